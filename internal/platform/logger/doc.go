// Package logger configures the process-wide log/slog JSON logger and carries
// request-scoped loggers through a context.Context.
package logger
