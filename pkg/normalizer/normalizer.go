// Package normalizer is the public API for turning arbitrary values, such
// as metadata fields that may arrive as text or as raw UTF-8 bytes, into text.
package normalizer

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_text_normalizer/internal/adapters/decoder"
	"github.com/baditaflorin/go_text_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/go_text_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_text_normalizer/internal/core/text"
	"github.com/baditaflorin/go_text_normalizer/internal/ports"
	"github.com/baditaflorin/go_text_normalizer/internal/warmup"
	"github.com/baditaflorin/l"
)

// Result re-exports the diagnostic result of a normalization.
type Result = domain.Result

// LocalizedText re-exports the locale-keyed text map.
type LocalizedText = domain.LocalizedText

// WarmUpConfig re-exports the warm-up configuration.
type WarmUpConfig = warmup.WarmupConfig

// DefaultWarmUpConfig returns the default warm-up configuration.
func DefaultWarmUpConfig() WarmUpConfig {
	return warmup.DefaultWarmupConfig()
}

// TextNormalizer converts values to text. It is safe for concurrent use.
type TextNormalizer struct {
	normalizer ports.Normalizer
	logger     ports.Logger
	warmed     bool
}

// Option defines a functional option for configuring TextNormalizer.
type Option func(*config)

type config struct {
	Logger       ports.Logger
	Decoder      ports.Decoder
	WarmUp       bool
	WarmUpConfig WarmUpConfig
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithDecoder replaces the UTF-8 decoder used for byte sequences.
func WithDecoder(d ports.Decoder) Option {
	return func(cfg *config) {
		cfg.Decoder = d
	}
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(wc WarmUpConfig) Option {
	return func(cfg *config) {
		cfg.WarmUp = true
		cfg.WarmUpConfig = wc
	}
}

// New creates a new TextNormalizer.
func New(opts ...Option) (*TextNormalizer, error) {
	cfg := &config{
		WarmUpConfig: DefaultWarmUpConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if cfg.Decoder == nil {
		cfg.Decoder = decoder.NewUTF8Decoder()
	}

	core, err := text.NewNormalizer(cfg.Decoder, cfg.Logger)
	if err != nil {
		return nil, err
	}

	tn := &TextNormalizer{
		normalizer: core,
		logger:     cfg.Logger,
	}

	if cfg.WarmUp {
		if err := cfg.WarmUpConfig.Validate(); err != nil {
			return nil, err
		}
		wm := warmup.NewManager(cfg.Logger, cfg.WarmUpConfig)
		wm.RegisterNormalizer(core)
		wm.WarmUp(context.Background())
		tn.warmed = true
	}

	return tn, nil
}

// Normalize returns the textual form of value. It never fails: invalid
// UTF-8 in byte sequences becomes U+FFFD and failed conversions fall back
// to the value's default rendering.
func (tn *TextNormalizer) Normalize(value any) string {
	return tn.normalizer.Normalize(value)
}

// Inspect normalizes value and reports decoding and fallback diagnostics.
func (tn *TextNormalizer) Inspect(value any) Result {
	return tn.normalizer.Inspect(value)
}

// NormalizeLocalized normalizes every entry of a locale-keyed value.
func (tn *TextNormalizer) NormalizeLocalized(values map[string]any) LocalizedText {
	return text.NormalizeLocalized(tn.normalizer, values)
}

// IsWarmedUp reports whether warm-up ran during construction.
func (tn *TextNormalizer) IsWarmedUp() bool {
	return tn.warmed
}

// Close closes the underlying logger.
func (tn *TextNormalizer) Close() error {
	return tn.logger.Close()
}

// Localized normalizes a locale-keyed map of any value type.
func Localized[V any](tn *TextNormalizer, values map[string]V) LocalizedText {
	return text.NormalizeLocalized(tn.normalizer, values)
}

var (
	defaultOnce       sync.Once
	defaultNormalizer ports.Normalizer
)

func shared() ports.Normalizer {
	defaultOnce.Do(func() {
		// Both collaborators are non-nil, so construction cannot fail
		defaultNormalizer, _ = text.NewNormalizer(decoder.NewUTF8Decoder(), logger.Discard())
	})
	return defaultNormalizer
}

// Normalize converts value to text using a shared normalizer that does not log.
func Normalize(value any) string {
	return shared().Normalize(value)
}
