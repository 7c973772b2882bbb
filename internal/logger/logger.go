// Package logger provides structured logging for commands and the HTTP server.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

var std = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

// ParseLevel maps debug|info|warn|error onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel changes the level of the shared logger.
func SetLevel(s string) { level.Set(ParseLevel(s)) }

// SetOutput redirects the shared logger, keeping the current level.
func SetOutput(w io.Writer) {
	std = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// L returns the shared logger.
func L() *slog.Logger { return std }

// With returns the shared logger with extra attributes.
func With(args ...any) *slog.Logger { return std.With(args...) }
