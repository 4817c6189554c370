// Package text implements the two-stage text normalization pipeline:
// lossy UTF-8 decoding of byte sequences, then conversion to a Go string.
package text

import (
	"errors"
	"fmt"

	"github.com/baditaflorin/go_text_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_text_normalizer/internal/ports"
)

// Normalizer turns arbitrary values into text. It never fails and is safe
// for concurrent use as long as its decoder is.
type Normalizer struct {
	decoder ports.Decoder
	logger  ports.Logger
}

// NewNormalizer creates a new normalizer.
func NewNormalizer(decoder ports.Decoder, logger ports.Logger) (*Normalizer, error) {
	if decoder == nil {
		return nil, errors.New("decoder is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Normalizer{
		decoder: decoder,
		logger:  logger,
	}, nil
}

// Normalize returns the textual form of value.
func (n *Normalizer) Normalize(value any) string {
	return n.Inspect(value).Text
}

// Inspect normalizes value and reports what each stage did.
func (n *Normalizer) Inspect(value any) domain.Result {
	var details map[string]interface{}
	kind := kindOf(value)

	decoded, replaced, err := decode(n.decoder, value)
	if err != nil {
		n.logger.Debug("Decoding failed, keeping original value",
			"type", fmt.Sprintf("%T", value),
			"error", err,
		)
		details = addDetail(details, "decode_error", err.Error())
	}
	if replaced > 0 {
		n.logger.Debug("Replaced invalid byte sequences",
			"replacements", replaced,
		)
		details = addDetail(details, "replacements", replaced)
	}

	text, err := canonicalize(decoded)
	fellBack := err != nil
	if fellBack {
		n.logger.Debug("Canonical conversion discarded",
			"type", fmt.Sprintf("%T", decoded),
			"error", err,
		)
		details = addDetail(details, "canonicalize_error", err.Error())
	}

	return domain.Result{
		Text:         text,
		Kind:         kind,
		Replacements: replaced,
		FellBack:     fellBack,
		Details:      details,
	}
}

func addDetail(details map[string]interface{}, key string, value interface{}) map[string]interface{} {
	if details == nil {
		details = make(map[string]interface{})
	}
	details[key] = value
	return details
}
