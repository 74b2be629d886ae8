// Package logging provides zap logger helpers.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the process-wide logger. It starts as a no-op so packages that
// log before configuration is loaded never nil-panic; InitLogger and
// Set upgrade it.
var L = zap.NewNop()

// InitLogger installs a production logger as the process-wide default.
// Called once at the very start of Execute, before config is read.
func InitLogger() {
	logger, err := New(false)
	if err != nil {
		return
	}
	L = logger
}

// Set replaces the process-wide logger, typically with the file-teed
// logger built once configuration is known.
func Set(logger *zap.Logger) {
	if logger != nil {
		L = logger
	}
}

// New builds a zap.Logger configured for development or production.
func New(development bool) (*zap.Logger, error) {
	return NewTee(development, "")
}

// NewTee builds a logger writing to the console and, when logFile is
// set, to that file as well. Log I/O failure never blocks the
// pipeline; zap drops writes it cannot complete.
func NewTee(development bool, logFile string) (*zap.Logger, error) {
	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if logFile != "" {
			cfg.OutputPaths = append(cfg.OutputPaths, logFile)
		}
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build dev logger: %w", err)
		}
		return logger, nil
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = false
	cfg.EncoderConfig.TimeKey = "ts"
	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build prod logger: %w", err)
	}
	return logger, nil
}
