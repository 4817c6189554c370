package decoder

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF8DecoderDecode(t *testing.T) {
	tests := []struct {
		name         string
		input        []byte
		expected     string
		replacements int
	}{
		{name: "Empty", input: nil, expected: "", replacements: 0},
		{name: "ASCII", input: []byte("hello"), expected: "hello", replacements: 0},
		{name: "Valid multibyte", input: []byte("héllo"), expected: "héllo", replacements: 0},
		{name: "Invalid pair", input: []byte{0xff, 0xfe}, expected: "��", replacements: 2},
		{name: "Invalid inside text", input: []byte("a\xffb"), expected: "a�b", replacements: 1},
		{name: "Truncated sequence at end", input: []byte("ab\xe2\x82"), expected: "ab�", replacements: 1},
		{name: "Existing replacement kept", input: []byte("�\xff"), expected: "��", replacements: 1},
	}

	d := NewUTF8Decoder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := d.Decode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.replacements, n)
		})
	}
}

func TestUTF8DecoderAllInvalidInput(t *testing.T) {
	d := NewUTF8Decoder()
	src := []byte(strings.Repeat("\xff", 10000))

	got, n, err := d.Decode(src)
	require.NoError(t, err)
	assert.Equal(t, 10000, n)
	assert.Equal(t, strings.Repeat("\uFFFD", 10000), got)
	assert.Len(t, got, 10000*len(replacement))
}

func TestUTF8DecoderDoesNotAliasInput(t *testing.T) {
	d := NewUTF8Decoder()
	src := []byte("caf\xc3\xa9\xff")

	got, _, err := d.Decode(src)
	require.NoError(t, err)

	src[0] = 'X'
	assert.Equal(t, "café�", got)
}

func TestUTF8DecoderConcurrentUse(t *testing.T) {
	d := NewUTF8Decoder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, n, err := d.Decode([]byte("x\xfe\xffy"))
				if err != nil || got != "x��y" || n != 2 {
					t.Errorf("unexpected decode result %q, %d, %v", got, n, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
