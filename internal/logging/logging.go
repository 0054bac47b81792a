// Package logging builds the zap loggers used by the CLI and the compute service.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how much to log.
type Options struct {
	Debug bool
	// File receives the logs instead of stderr when set.
	File string
	// Quiet drops everything when no File is set. Interactive commands use it
	// so log lines never land on top of the terminal UI.
	Quiet bool
}

// New builds a production zap logger from opts.
func New(opts Options) (*zap.Logger, error) {
	if opts.Quiet && opts.File == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	if opts.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.File != "" {
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
