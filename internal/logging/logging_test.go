package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.name)
		assert.Equal(t, tt.level, level, tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")

	logger, closer, err := Setup("warn", path)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "moves", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "msg=shown moves=3")
}

func TestSetupDiscards(t *testing.T) {
	logger, closer, err := Setup("bogus", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}
