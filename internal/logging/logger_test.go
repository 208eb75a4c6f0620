package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/episode-combiner/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input), "parseLevel(%q)", input)
	}
}

func TestNew_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "app.log")

	logger, closeFn, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path, path}})
	require.NoError(t, err)

	logger.Info("episode published", String(FieldEpisode, "Ep01"), Int(FieldTrack, 1))
	logger.Debug("hidden")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"episode":"Ep01"`)
	assert.Contains(t, lines[0], `"track":1`)
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, _, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestNewFromSettings_Discard(t *testing.T) {
	logger, closeFn, err := NewFromSettings(&config.Settings{}, false)
	require.NoError(t, err)
	logger.Info("nothing to see")
	assert.NoError(t, closeFn())
}

func TestNewFromSettings_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closeFn, err := NewFromSettings(&config.Settings{LogFile: path, LogLevel: "warn"}, false)
	require.NoError(t, err)

	logger.Info("skipped")
	logger.Warn("cover art unreadable", Error(os.ErrNotExist))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipped")
	assert.Contains(t, string(data), "cover art unreadable")
}
