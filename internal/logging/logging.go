// Package logging provides the structured JSON logger used across the
// clipper, built on log/slog.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON logger writing to stderr at the given level.
// Supported levels: debug, info, warn, error.
func New(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

// WithComponent returns a logger tagged with the component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithVideo returns a logger tagged with the video id.
func WithVideo(logger *slog.Logger, videoID string) *slog.Logger {
	return logger.With("video_id", videoID)
}
