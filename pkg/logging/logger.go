package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so the rest of the app depends on one type.
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger on stdout with the given level.
func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with a custom destination, mostly for tests.
func NewWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// Default returns an info level logger.
func Default() *Logger {
	return New("info")
}

// Discard returns a logger that writes nowhere.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
