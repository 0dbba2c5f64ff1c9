package logging

import (
	"context"
	"maps"
)

// Logger defines the leveled logging contract used across the build
// pipeline. It mirrors the interface exposed by github.com/goliatone/go-logger
// so hosts can plug that package in without additional adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// Provider exposes named loggers. Implementations can return the same
// instance for every name or scope module-based children.
type Provider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// WithFields attaches structured fields when the implementation supports the
// optional FieldsLogger extension. Passing nil or an empty map is safe.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// NoOp returns a logger that discards every entry. Used as the default
// wherever a caller does not supply a logger.
func NoOp() Logger {
	return noOpLogger{}
}

type noOpLogger struct{}

func (noOpLogger) Trace(string, ...any)                 {}
func (noOpLogger) Debug(string, ...any)                 {}
func (noOpLogger) Info(string, ...any)                  {}
func (noOpLogger) Warn(string, ...any)                  {}
func (noOpLogger) Error(string, ...any)                 {}
func (noOpLogger) Fatal(string, ...any)                 {}
func (l noOpLogger) WithContext(context.Context) Logger { return l }
func (l noOpLogger) WithFields(map[string]any) Logger   { return l }
