// Package logging configures the structured logger used by the game.
//
// The terminal belongs to the game while it runs, so logs are written to a
// file or discarded, never to stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel converts a configured level name. Unknown names map to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup creates a text logger writing to path, or discarding output when
// path is empty. The returned closer releases the log file.
func Setup(level, path string) (*slog.Logger, io.Closer, error) {
	lvl, ok := ParseLevel(level)

	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("error creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log file: %w", err)
		}
		w, closer = f, f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
