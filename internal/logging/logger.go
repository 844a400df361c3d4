// Package logging provides structured logging for Gameday runs.
// It wraps Go's log/slog package to produce JSON-formatted logs suitable
// for post-hoc inspection of a pipeline run.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log levels accepted by New.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger emits JSON-formatted structured logs. It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing JSON records to w at the given level.
// Unrecognized levels default to INFO. A nil writer means stderr.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{logger: slog.New(handler)}
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return New(io.Discard, LevelError)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a Logger carrying the given persistent key-value attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
