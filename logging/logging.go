// Package logging provides the structured logger used across the demo. It
// is a thin layer over log/slog so components depend on an interface and
// tests can pass Noop().
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Field is a structured logging attribute.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field  { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }
func Float(key string, value float64) Field {
	return Field{Key: key, Value: value}
}
func Any(key string, value any) Field { return Field{Key: key, Value: value} }
func Err(err error) Field             { return Field{Key: "err", Value: err} }

// Logger is the logging surface components depend on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Config controls handler selection.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// New constructs a Logger writing to stderr.
func New(cfg Config) Logger {
	return NewWriter(os.Stderr, cfg)
}

// NewWriter constructs a Logger writing to w.
func NewWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return &slogger{l: slog.New(handler)}
}

// Noop returns a logger that drops everything.
func Noop() Logger { return noopLogger{} }

type slogger struct {
	l *slog.Logger
}

func (s *slogger) With(fields ...Field) Logger {
	return &slogger{l: s.l.With(toArgs(fields)...)}
}

func (s *slogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, toArgs(fields)...) }
func (s *slogger) Info(msg string, fields ...Field)  { s.l.Info(msg, toArgs(fields)...) }
func (s *slogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, toArgs(fields)...) }
func (s *slogger) Error(msg string, fields ...Field) { s.l.Error(msg, toArgs(fields)...) }

type noopLogger struct{}

func (noopLogger) With(...Field) Logger   { return noopLogger{} }
func (noopLogger) Debug(string, ...Field) {}
func (noopLogger) Info(string, ...Field)  {}
func (noopLogger) Warn(string, ...Field)  {}
func (noopLogger) Error(string, ...Field) {}

func toArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
