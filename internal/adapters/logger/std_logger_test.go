package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, os.Stderr, cfg.Output)
	assert.False(t, cfg.AsyncWrite)
	assert.False(t, cfg.Metrics)
	assert.False(t, cfg.AddSource)
}

func TestNewStdLogger(t *testing.T) {
	lg, err := NewStdLogger()
	require.NoError(t, err)
	require.NotNil(t, lg)
	t.Cleanup(func() { _ = lg.Close() })
	lg.Debug("created", "component", "test")
}

func TestDiscard(t *testing.T) {
	lg := Discard()
	require.NotNil(t, lg)
	lg.Info("dropped", "key", "value")
	lg.Error("dropped")
}
