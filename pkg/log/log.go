package log

import (
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var levels = map[string]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
}

// parseLevel falls back to debug for unknown names.
func parseLevel(name string) zapcore.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return zapcore.DebugLevel
}

func encoderConfig(cfg ZapConfig) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	if cfg.Mode == ModeProduction {
		ec = zap.NewProductionEncoderConfig()
	}
	ec.LevelKey = "LEVEL"
	ec.CallerKey = "CALLER"
	ec.TimeKey = "TIME"
	ec.NameKey = "NAME"
	ec.MessageKey = "MESSAGE"
	ec.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	}
	if cfg.ColorEnabled && cfg.Encoding == EncodingConsole {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}

func build(cfg ZapConfig) *zap.SugaredLogger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	ec := encoderConfig(cfg)
	encoder := zapcore.NewJSONEncoder(ec)
	if cfg.Encoding == EncodingConsole {
		encoder = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(parseLevel(cfg.Level)))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	if cfg.Service != "" {
		logger = logger.With(zap.String(serviceKey, cfg.Service))
	}
	return logger.Sugar()
}

func newNop() *zapLogger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) from(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		panic("log: nil context")
	}
	if child, _ := ctx.Value(loggerKey{}).(*zap.SugaredLogger); child != nil {
		return child
	}
	return l.sugar
}

func (l *zapLogger) With(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, loggerKey{}, l.from(ctx).With(keysAndValues...))
}

func (l *zapLogger) Debug(ctx context.Context, args ...any) { l.from(ctx).Debug(args...) }
func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Debugf(template, args...)
}
func (l *zapLogger) Info(ctx context.Context, args ...any) { l.from(ctx).Info(args...) }
func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.from(ctx).Infof(template, args...)
}
func (l *zapLogger) Warn(ctx context.Context, args ...any) { l.from(ctx).Warn(args...) }
func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Warnf(template, args...)
}
func (l *zapLogger) Error(ctx context.Context, args ...any) { l.from(ctx).Error(args...) }
func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Errorf(template, args...)
}
func (l *zapLogger) Fatal(ctx context.Context, args ...any) { l.from(ctx).Fatal(args...) }
func (l *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Fatalf(template, args...)
}
