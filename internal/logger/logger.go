// Package logger builds the zap logger used by the commands. Output goes to
// stderr or, when a file is configured, to a lumberjack-rotated file.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      string
	Format     string // console or json
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days

	// Output replaces stderr when File is empty. Used by tests.
	Output io.Writer
}

// New returns a logger and a function that flushes it and closes the log
// file, if any.
func New(opts Options) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return nil, nil, err
	}

	ws, closer := buildWriteSyncer(opts)
	core := zapcore.NewCore(buildEncoder(opts), ws, zap.NewAtomicLevelAt(level))
	log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	closeFn := func() error {
		_ = log.Sync()
		if closer != nil {
			return closer.Close()
		}
		return nil
	}
	return log, closeFn, nil
}

func buildEncoder(opts Options) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(opts.Format, "json") {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	if opts.File == "" && opts.Output == nil {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func buildWriteSyncer(opts Options) (zapcore.WriteSyncer, io.Closer) {
	if path := strings.TrimSpace(opts.File); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    positiveOr(opts.MaxSize, 10),
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
		}
		return zapcore.AddSync(rotating), rotating
	}
	if opts.Output != nil {
		return zapcore.AddSync(opts.Output), nil
	}
	return zapcore.Lock(zapcore.AddSync(os.Stderr)), nil
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
