package preset

const (
	surfacesKey = "surfaces"
)
