package log

import (
	"io"

	"go.uber.org/zap"
)

// ZapConfig holds configuration for the Zap logger.
type ZapConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	// Service, when set, is attached to every entry under the "service" key.
	Service string
	// Output defaults to os.Stderr.
	Output io.Writer
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	cfg   ZapConfig
}

type loggerKey struct{}
