package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/timedate/internal/config"
)

func TestNew_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	l.Debug().Str("op", "convert").Msg("query")
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"op":"convert"`)
	assert.Contains(t, buf.String(), `"message":"query"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LogConfig{Level: "info", Format: "console"}, &buf)
	require.NoError(t, err)

	l.Info().Str("zone", "UTC").Msg("ready")
	out := buf.String()
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "zone=")
	assert.NotContains(t, out, `"message"`)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "timedate.log")
	l, err := New(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1, MaxBackups: 1}, nil)
	require.NoError(t, err)

	l.Info().Msg("to file")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"to file"`)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}

func TestNew_EmptyLevel(t *testing.T) {
	l, err := New(config.LogConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	assert.NoError(t, l.Close())
}
