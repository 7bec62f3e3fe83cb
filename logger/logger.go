// Package logger provides structured, levelled logging behind a small
// interface so packages stay decoupled from the logging backend.
package logger

import "context"

// Logger is the logging contract used across the server.
type Logger interface {
	// Debug logs a debug-level message with optional fields.
	Debug(ctx context.Context, msg string, fields map[string]interface{})

	// Info logs an info-level message with optional fields.
	Info(ctx context.Context, msg string, fields map[string]interface{})

	// Warn logs a warning-level message with optional fields.
	Warn(ctx context.Context, msg string, fields map[string]interface{})

	// Error logs an error-level message with optional fields.
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// WithField returns a logger that adds the field to every entry.
	WithField(key string, value interface{}) Logger
}
