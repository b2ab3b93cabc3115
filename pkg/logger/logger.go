package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describe how to build the process logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds a zap logger. Format "json" uses the production encoder, anything
// else the human readable console encoder. Output defaults to stderr so that
// stdout stays reserved for the capture report.
func New(opts Options) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("unsupported log level %q", opts.Level)
		}
		lvl = parsed
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		encCfg := zap.NewProductionEncoderConfig()
		// Customize attribute keys for consistency
		encCfg.TimeKey = "timestamp"
		encCfg.MessageKey = "message"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "", "console", "text":
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), lvl)
	return zap.New(core), nil
}
