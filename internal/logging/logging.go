// Package logging builds the process-wide zap logger and the per-subsystem
// named loggers the analyzers use.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names one logging subsystem.
type Category string

const (
	CategoryCLI      Category = "cli"
	CategoryBackend  Category = "backend"
	CategoryAnalyzer Category = "analyzer"
	CategorySession  Category = "session"
)

// New builds a production zap logger. verbose switches the level to debug.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// For returns the named logger for a category. A nil base yields a no-op
// logger so library code never has to guard its log calls.
func For(base *zap.Logger, c Category) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(string(c))
}
