package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesLevel(t *testing.T) {
	l, err := New("debug", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := New("loud", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New("info", path)
	require.NoError(t, err)

	l.Info().Str("website", "w1").Msg("stats served")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stats served")
	assert.Contains(t, string(data), `"website":"w1"`)
}

func TestGet_NoopBeforeInit(t *testing.T) {
	prev := Global
	Global = nil
	defer func() { Global = prev }()

	l := Get()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
