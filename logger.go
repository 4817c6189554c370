// logger.go
// Package textnormalizer provides shared utilities for the go_text_normalizer package.
package textnormalizer

import (
	"github.com/baditaflorin/go_text_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/l"
)

// defaultLoggerConfig is the configuration used when the caller supplies no logger.
func defaultLoggerConfig() l.Config {
	return logger.DefaultConfig()
}

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(defaultLoggerConfig())
}
