package logging

import (
	"context"
	"log/slog"
)

const fieldError = "error"

// Debug logs a debug message when a logger is configured.
func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message when a logger is configured.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning when a logger is configured.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error when a logger is configured.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, fieldError, err)
	}
	logger.Error(msg, args...)
}

// Log writes at level through the request-scoped logger in ctx, falling back to logger.
func Log(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, args ...any) {
	logger = FromContext(ctx, logger)
	if logger == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Log(ctx, level, msg, args...)
}
