// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// FormIDKey is the context key for the form being processed
	FormIDKey contextKey = "form_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and form_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("request_id", requestID))}
	}

	if formID, ok := ctx.Value(FormIDKey).(string); ok && formID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("form_id", formID))}
	}

	return newLogger
}

// WithFormID returns a logger with the form ID attached.
func (l *Logger) WithFormID(formID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("form_id", formID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// SubmissionEvent logs the outcome of a form submission pipeline run.
// Duplicate detection happens downstream in the lead store, so the flag
// is not part of this record.
func (l *Logger) SubmissionEvent(formID, source, submissionType string, leadScore int) {
	l.Info("submission_event",
		slog.String("form_id", formID),
		slog.String("source", source),
		slog.String("submission_type", submissionType),
		slog.Int("lead_score", leadScore),
	)
}

// SubmissionFailed logs a failed submission pipeline run.
func (l *Logger) SubmissionFailed(formID string, err error) {
	l.Error("submission_failed",
		slog.String("form_id", formID),
		slog.String("error", err.Error()),
	)
}

// LookupDegraded logs a non-fatal external lookup failure. A nil err
// records the degradation without an error field.
func (l *Logger) LookupDegraded(service string, err error) {
	attrs := []any{slog.String("service", service)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.Warn("lookup_degraded", attrs...)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
