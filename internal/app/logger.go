package app

import (
	"io"
	"log/slog"
)

// newLogger builds an isolated slog.Logger writing to w. It never touches the
// global default logger, so several apps can run side by side in tests.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
