package text

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_text_normalizer/internal/ports"
)

// ErrRedundantConversion marks a canonical conversion that could not be
// completed safely. The normalizer recovers from it by keeping the prior value.
var ErrRedundantConversion = errors.New("redundant conversion")

// kindOf classifies value the same way the two stages do.
func kindOf(value any) string {
	if _, ok := asBytes(value); ok {
		return domain.KindBytes
	}
	switch value.(type) {
	case string, []rune:
		return domain.KindText
	case error, fmt.Stringer:
		return domain.KindOther
	}
	if value != nil && reflect.TypeOf(value).Kind() == reflect.String {
		return domain.KindText
	}
	return domain.KindOther
}

// asBytes reports whether value is a byte sequence. Named byte slices that
// know how to print themselves (net.IP, for instance) are not.
func asBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case error, fmt.Stringer:
		return nil, false
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return rv.Bytes(), true
	}
	return nil, false
}

// decode is the first stage. Byte sequences are decoded; every other value,
// and any byte sequence the decoder rejects, is returned unchanged.
func decode(dec ports.Decoder, value any) (any, int, error) {
	raw, ok := asBytes(value)
	if !ok {
		return value, 0, nil
	}
	s, replaced, err := dec.Decode(raw)
	if err != nil {
		return value, 0, err
	}
	return s, replaced, nil
}

// canonicalize is the second stage: it renders value as a Go string.
// Strings pass through untouched. On failure the returned text is the prior
// value as-is and the error wraps ErrRedundantConversion.
func canonicalize(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []rune:
		return string(v), nil
	case error:
		return callText(value, v.Error)
	case fmt.Stringer:
		return callText(value, v.String)
	}

	if value != nil {
		if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	}

	return callText(value, func() string { return fmt.Sprint(value) })
}

// callText runs render inside a recovery boundary. A rendering that is not
// valid UTF-8 is rejected but still returned, so render runs exactly once.
func callText(value any, render func() string) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = fallback(value)
			err = fmt.Errorf("%w: rendering %T panicked: %s", ErrRedundantConversion, value, describePanic(r))
		}
	}()

	s = render()
	if !utf8.ValidString(s) {
		return s, fmt.Errorf("%w: rendering of %T is not valid UTF-8", ErrRedundantConversion, value)
	}
	return s, nil
}

// describePanic avoids calling methods on the recovered value, which may panic too.
func describePanic(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case runtime.Error:
		return v.Error()
	default:
		return fmt.Sprintf("%T", r)
	}
}

// fallback renders a value whose text method panicked. fmt recovers most
// panicking methods itself; when it cannot, only the type name is left.
func fallback(value any) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("%T", value)
		}
	}()
	return fmt.Sprint(value)
}
