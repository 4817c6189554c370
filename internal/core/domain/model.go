package domain

// Kinds of input recognised by the normalizer.
const (
	KindText  = "text"
	KindBytes = "bytes"
	KindOther = "other"
)

// Result holds the outcome of a normalization together with diagnostics.
type Result struct {
	Text string
	Kind string
	// Replacements is the number of U+FFFD characters inserted while decoding.
	Replacements int
	// FellBack reports that the canonical conversion was discarded.
	FellBack bool
	Details  map[string]interface{}
}

// UntranslatedLocale is the locale key holding the untranslated value.
const UntranslatedLocale = "C"

// LocalizedText maps a locale key such as "C", "de" or "pt_BR" to its text.
type LocalizedText map[string]string

// Untranslated returns the untranslated ("C") entry, or "" if there is none.
func (lt LocalizedText) Untranslated() string {
	return lt[UntranslatedLocale]
}
