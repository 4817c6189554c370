package ports

import "github.com/baditaflorin/go_text_normalizer/internal/core/domain"

// Normalizer defines the interface for turning an arbitrary value into text.
type Normalizer interface {
	Normalize(value any) string
	Inspect(value any) domain.Result
}
