package log

// Logger modes.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Output encodings.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Level names accepted in configuration. Matching is case-insensitive.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

const (
	timeFormat = "2006-01-02 15:04:05.000"
	serviceKey = "service"
)
