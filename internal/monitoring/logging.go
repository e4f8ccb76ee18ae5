// Package monitoring provides the structured logging used around record
// transforms. Metrics and observability hook interfaces live in the root
// package; this package owns the slog-backed logger.
package monitoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogFormat represents the output format for logs.
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatText
)

// StructuredLogger wraps log/slog with the fields every fieldcipher log
// line carries.
type StructuredLogger struct {
	logger *slog.Logger
	level  LogLevel
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
}

// NewStructuredLogger creates a new structured logger with the given configuration.
func NewStructuredLogger(config LoggerConfig) *StructuredLogger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	var slogLevel slog.Level
	switch config.Level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	logger := slog.New(handler).With("service", "fieldcipher")
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}

	return &StructuredLogger{logger: logger, level: config.Level}
}

// With returns a new logger carrying additional key/value pairs.
func (l *StructuredLogger) With(args ...any) *StructuredLogger {
	return &StructuredLogger{logger: l.logger.With(args...), level: l.level}
}

// Debug logs a debug level message.
func (l *StructuredLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info level message.
func (l *StructuredLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning level message.
func (l *StructuredLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error level message.
func (l *StructuredLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// LogTransformFailure logs a failed record transform with standard fields.
func (l *StructuredLogger) LogTransformFailure(ctx context.Context, field string, err error, metadata map[string]any) {
	args := []any{
		slog.String("field", field),
		slog.String("error", err.Error()),
		slog.String("error_type", fmt.Sprintf("%T", err)),
	}
	for k, v := range metadata {
		args = append(args, slog.Any(k, v))
	}
	l.logger.WarnContext(ctx, "record transform failed", args...)
}

// LogEngineRebuild logs an engine teardown-and-rebuild after a transform failure.
func (l *StructuredLogger) LogEngineRebuild(ctx context.Context, algorithm string, err error) {
	if err != nil {
		l.logger.ErrorContext(ctx, "cipher engine rebuild failed",
			slog.String("algorithm", algorithm),
			slog.String("error", err.Error()))
		return
	}
	l.logger.DebugContext(ctx, "cipher engine rebuilt", slog.String("algorithm", algorithm))
}

// NewProductionLogger creates a logger configured from the environment.
// FIELDCIPHER_LOG_LEVEL selects debug/info/warn/error (default info);
// FIELDCIPHER_LOG_FORMAT selects json/text (default json).
func NewProductionLogger(component string) *StructuredLogger {
	level := LevelInfo
	switch os.Getenv("FIELDCIPHER_LOG_LEVEL") {
	case "debug":
		level = LevelDebug
	case "info":
		level = LevelInfo
	case "warn":
		level = LevelWarn
	case "error":
		level = LevelError
	}

	format := FormatJSON
	if os.Getenv("FIELDCIPHER_LOG_FORMAT") == "text" {
		format = FormatText
	}

	return NewStructuredLogger(LoggerConfig{
		Level:     level,
		Format:    format,
		Component: component,
	})
}

// NewNopLogger creates a logger that discards everything. Used as the
// default in tests and when callers bring their own logging.
func NewNopLogger() *StructuredLogger {
	return NewStructuredLogger(LoggerConfig{Level: LevelError, Output: io.Discard})
}
