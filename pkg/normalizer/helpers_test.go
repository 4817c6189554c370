package normalizer

import (
	"io"
	"testing"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) l.Logger {
	t.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: true,
	})
	require.NoError(t, err)
	return lg
}
