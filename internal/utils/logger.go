package utils

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Logger is the logging interface used by the command layer
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)

	// Structured logging with key-value pairs
	With(args ...any) Logger

	// Operation logging
	LogOperation(op string, duration time.Duration, err error, args ...any)
	LogError(err error, msg string, args ...any)
}

// SlogLogger implements Logger interface using slog
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a new logger wrapper around slog.Logger
func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{
		logger: logger,
	}
}

// NewSlog builds a slog.Logger writing JSON when jsonOutput is set and text
// otherwise. Unknown levels fall back to info.
func NewSlog(w io.Writer, jsonOutput bool, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(args...),
	}
}

// LogOperation logs the outcome of a finished operation at info level, or at
// error level when err is set
func (l *SlogLogger) LogOperation(op string, duration time.Duration, err error, args ...any) {
	level := slog.LevelInfo
	baseArgs := []any{
		"operation", op,
		"duration", duration.String(),
	}
	if err != nil {
		level = slog.LevelError
		baseArgs = append(baseArgs, "error", err)
	}

	allArgs := append(baseArgs, args...)
	l.logger.Log(context.Background(), level, "Operation finished", allArgs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	allArgs := append([]any{"error", err}, args...)
	l.logger.Error(msg, allArgs...)
}
