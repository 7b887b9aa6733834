package log

import "context"

// Logger is a context-aware leveled logger. Every method takes the request
// context first so that fields attached with With follow the call chain.
type Logger interface {
	Debug(ctx context.Context, arg ...any)
	Debugf(ctx context.Context, template string, arg ...any)
	Info(ctx context.Context, arg ...any)
	Infof(ctx context.Context, template string, arg ...any)
	Warn(ctx context.Context, arg ...any)
	Warnf(ctx context.Context, template string, arg ...any)
	Error(ctx context.Context, arg ...any)
	Errorf(ctx context.Context, template string, arg ...any)
	Fatal(ctx context.Context, arg ...any)
	Fatalf(ctx context.Context, template string, arg ...any)

	// With returns a context carrying a child logger annotated with the given
	// key/value pairs.
	With(ctx context.Context, keysAndValues ...any) context.Context
}

// Init builds a Logger from cfg.
func Init(cfg ZapConfig) Logger {
	return &zapLogger{cfg: cfg, sugar: build(cfg)}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return newNop()
}
