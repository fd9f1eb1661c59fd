// Package observability provides structured logging and request-correlation
// utilities for timeloom.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFormat specifies the output format for logs.
type LogFormat string

const (
	// LogFormatText outputs human-readable, colorized console logs.
	LogFormatText LogFormat = "text"
	// LogFormatJSON outputs JSON-structured logs for production/file sinks.
	LogFormatJSON LogFormat = "json"
)

// LogLevel represents logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogConfig configures the logger.
type LogConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// Format specifies the console output format (text or json).
	Format LogFormat
	// Output is the console writer for logs. Defaults to os.Stderr.
	Output io.Writer
	// FilePath, if set, additionally writes JSON logs to a rotated file.
	FilePath string
	// ServiceName is included in all log entries.
	ServiceName string
	// ServiceVersion is included in all log entries.
	ServiceVersion string
}

// DefaultLogConfig returns sensible defaults for development.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:          LogLevelInfo,
		Format:         LogFormatText,
		Output:         os.Stderr,
		ServiceName:    "timeloom",
		ServiceVersion: "dev",
	}
}

// NewLogger creates a new structured logger with the given configuration.
// The console side renders via tint when Format is text; a JSON handler is
// used for Format json and for the optional rotating file sink.
func NewLogger(cfg LogConfig) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level := parseSlogLevel(cfg.Level)

	var console slog.Handler
	switch cfg.Format {
	case LogFormatJSON:
		console = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		console = tint.NewHandler(cfg.Output, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	handler := console
	if cfg.FilePath != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		fileHandler := slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: level})
		handler = &multiHandler{handlers: []slog.Handler{console, fileHandler}}
	}

	attrs := []slog.Attr{}
	if cfg.ServiceName != "" {
		attrs = append(attrs, slog.String("service", cfg.ServiceName))
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", cfg.ServiceVersion))
	}
	handler = &attributeHandler{handler: handler, attrs: attrs}

	return slog.New(handler)
}

// LoggerFromEnv creates a logger based on environment variables.
// TIMELOOM_LOG_LEVEL: debug, info, warn, error
// TIMELOOM_LOG_FORMAT: text, json
// TIMELOOM_LOG_FILE: optional rotated JSON log file path
func LoggerFromEnv() *slog.Logger {
	cfg := DefaultLogConfig()

	if level := os.Getenv("TIMELOOM_LOG_LEVEL"); level != "" {
		cfg.Level = LogLevel(level)
	}
	if format := os.Getenv("TIMELOOM_LOG_FORMAT"); format != "" {
		cfg.Format = LogFormat(format)
	}
	if file := os.Getenv("TIMELOOM_LOG_FILE"); file != "" {
		cfg.FilePath = file
	}
	if version := os.Getenv("TIMELOOM_VERSION"); version != "" {
		cfg.ServiceVersion = version
	}

	return NewLogger(cfg)
}

func parseSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multiHandler fans a record out to every handler that is enabled for it.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}

// attributeHandler wraps a handler to add default attributes and
// context-carried correlation/request IDs.
type attributeHandler struct {
	handler slog.Handler
	attrs   []slog.Attr
}

func (h *attributeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *attributeHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, attr := range h.attrs {
		r.AddAttrs(attr)
	}
	if corrID := CorrelationIDFromContext(ctx); corrID != "" {
		r.AddAttrs(slog.String(CorrelationIDKey, corrID))
	}
	if reqID := RequestIDFromContext(ctx); reqID != "" {
		r.AddAttrs(slog.String(RequestIDKey, reqID))
	}
	return h.handler.Handle(ctx, r)
}

func (h *attributeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &attributeHandler{handler: h.handler.WithAttrs(attrs), attrs: h.attrs}
}

func (h *attributeHandler) WithGroup(name string) slog.Handler {
	return &attributeHandler{handler: h.handler.WithGroup(name), attrs: h.attrs}
}

// LogOperation creates a logger with operation-specific attributes.
func LogOperation(logger *slog.Logger, operation string, attrs ...any) *slog.Logger {
	args := append([]any{"operation", operation}, attrs...)
	return logger.With(args...)
}

// LogDuration logs the duration of an operation.
func LogDuration(logger *slog.Logger, operation string, start time.Time) {
	logger.Info("operation completed",
		"operation", operation,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
