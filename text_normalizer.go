// text_normalizer.go
// Package textnormalizer converts arbitrary values to text.
// Byte sequences are decoded as UTF-8, with every ill-formed subsequence
// replaced by U+FFFD; text passes through unchanged; anything else is
// rendered the way fmt prints it. The conversion never fails.
//
// This package keeps a small convenience surface; see pkg/normalizer for
// the full set of options.
package textnormalizer

import (
	"github.com/baditaflorin/go_text_normalizer/pkg/normalizer"
	"github.com/baditaflorin/l"
)

// Config holds configuration options for the normalizer.
type Config struct {
	// Logger for tracing decoding and fallback decisions.
	Logger l.Logger
}

// Option defines a functional option for configuring the normalizer.
type Option func(*Config)

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// TextNormalizer converts values to text using the configured logger.
type TextNormalizer struct {
	inner *normalizer.TextNormalizer
}

// New creates a new TextNormalizer with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) *TextNormalizer {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			panic(err)
		}
		cfg.Logger = logger
	}

	inner, err := normalizer.New(normalizer.WithLogger(cfg.Logger))
	if err != nil {
		panic(err)
	}
	return &TextNormalizer{inner: inner}
}

// Normalize returns the textual form of value.
func (tn *TextNormalizer) Normalize(value any) string {
	return tn.inner.Normalize(value)
}

// NormalizeLocalized normalizes every entry of a locale-keyed value.
func (tn *TextNormalizer) NormalizeLocalized(values map[string]any) map[string]string {
	return tn.inner.NormalizeLocalized(values)
}

// Normalize converts value to text with a shared, non-logging normalizer.
func Normalize(value any) string {
	return normalizer.Normalize(value)
}
