package decoder

import (
	"bytes"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_normalizer/internal/pool"
	"github.com/baditaflorin/go_text_normalizer/internal/ports"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// replacement is the UTF-8 encoding of U+FFFD, substituted for every
// ill-formed subsequence of the input.
var replacement = []byte(string(utf8.RuneError))

// UTF8Decoder decodes UTF-8 byte sequences, replacing invalid input instead of failing.
type UTF8Decoder struct {
	// x/text decoders carry transformer state and must not be shared
	decoders sync.Pool
	buffers  *pool.BufferPool
}

// NewUTF8Decoder creates a new lossy UTF-8 decoder.
func NewUTF8Decoder() ports.Decoder {
	d := &UTF8Decoder{
		buffers: pool.NewBufferPool(4096),
	}
	d.decoders.New = func() interface{} {
		return unicode.UTF8.NewDecoder()
	}
	return d
}

// Decode converts src to text. Each maximal ill-formed subsequence becomes
// one U+FFFD; the returned count excludes U+FFFD already present in src.
func (d *UTF8Decoder) Decode(src []byte) (string, int, error) {
	if len(src) == 0 {
		return "", 0, nil
	}

	// Fast path: well-formed input decodes to itself
	if utf8.Valid(src) {
		return string(src), 0, nil
	}

	dec := d.decoders.Get().(*encoding.Decoder)
	defer d.decoders.Put(dec)
	dec.Reset()

	// Worst case every byte becomes a 3-byte replacement
	buffer := d.buffers.Get(len(src) * len(replacement))
	defer d.buffers.Put(buffer)

	out, _, err := transform.Append(dec, *buffer, src)
	if err != nil {
		return "", 0, fmt.Errorf("decode utf-8: %w", err)
	}
	*buffer = out

	replaced := bytes.Count(out, replacement) - bytes.Count(src, replacement)
	return string(out), replaced, nil
}
