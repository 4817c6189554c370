package text

import (
	"github.com/baditaflorin/go_text_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_text_normalizer/internal/ports"
)

// NormalizeLocalized normalizes every entry of a localized value, such as a
// component name keyed by locale. Keys are kept verbatim; the result is never nil.
func NormalizeLocalized[V any](n ports.Normalizer, values map[string]V) domain.LocalizedText {
	out := make(domain.LocalizedText, len(values))
	for locale, value := range values {
		out[locale] = n.Normalize(value)
	}
	return out
}
