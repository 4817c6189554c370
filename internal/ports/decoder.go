package ports

// Decoder turns an encoded byte sequence into text.
type Decoder interface {
	// Decode returns the decoded text and the number of replacement
	// characters substituted for invalid input.
	Decode(src []byte) (string, int, error)
}
