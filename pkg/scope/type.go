package scope

type scopeCtxKey struct{}
