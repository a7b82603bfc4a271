package querymap

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with querymap-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// This is the default for Decode and ParseWith.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSource adds a source field to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// LogDecode logs the outcome of a structured decode.
func (l *Logger) LogDecode(source string, keys int, err error) {
	if err != nil {
		l.Warn("decode failed",
			"source", source,
			"keys_decoded", keys,
			"error", err,
		)
	} else {
		l.Debug("decode completed",
			"source", source,
			"keys", keys,
		)
	}
}

// LogParse logs the outcome of a query string parse.
func (l *Logger) LogParse(entries int, err error) {
	if err != nil {
		l.Warn("query parse failed",
			"entries_parsed", entries,
			"error", err,
		)
	} else {
		l.Debug("query parse completed",
			"entries", entries,
		)
	}
}
