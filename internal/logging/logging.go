// Package logging builds the slog loggers used by both binaries.
package logging

import (
	"io"
	"log/slog"
)

// NewCLI returns a text logger for the CLI. Without debug only warnings and
// errors are emitted, so regular command output stays clean.
func NewCLI(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewServer returns a JSON logger for the server.
func NewServer(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
