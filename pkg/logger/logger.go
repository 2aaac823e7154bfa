// Package logger wraps zap with the field helpers used across the services.
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around a zap.Logger.
type Logger struct {
	*zap.Logger
}

// New builds a Logger for the given level ("debug", "info", "warn", "error")
// and encoding ("json" or "console").
func New(level, encoding string) (*Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if encoding == "" {
		encoding = "json"
	}
	if encoding != "json" && encoding != "console" {
		return nil, fmt.Errorf("invalid log encoding %q", encoding)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = encoding
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: zl}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

type ctxFieldsKey struct{}

// ContextWithFields returns a copy of ctx carrying fields. The *Context
// logging methods append them to every entry.
func ContextWithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	merged := append(FieldsFromContext(ctx), fields...)
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

// FieldsFromContext returns the fields attached by ContextWithFields.
func FieldsFromContext(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxFieldsKey{}).([]zap.Field)
	// copy so callers appending to the result never share the stored array
	return append([]zap.Field(nil), fields...)
}

func withContextFields(ctx context.Context, fields []zap.Field) []zap.Field {
	return append(FieldsFromContext(ctx), fields...)
}

// DebugContext logs at debug level with the fields carried by ctx.
func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Debug(msg, withContextFields(ctx, fields)...)
}

// InfoContext logs at info level with the fields carried by ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Info(msg, withContextFields(ctx, fields)...)
}

// WarnContext logs at warn level with the fields carried by ctx.
func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Warn(msg, withContextFields(ctx, fields)...)
}

// ErrorContext logs at error level with the fields carried by ctx.
func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Error(msg, withContextFields(ctx, fields)...)
}

// Field creates a field of any type.
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

// StringField creates a string field.
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field.
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// ErrorField creates the standard error field.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}
