package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Initialize installs the process-wide slog logger.
func Initialize(level, format string) *slog.Logger {
	return InitializeTo(os.Stdout, level, format)
}

func InitializeTo(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// With returns the default logger tagged with a component name.
func With(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
