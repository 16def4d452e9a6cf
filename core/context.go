package core

import (
	"context"
	"io"
	"log/slog"
)

// Context keys for simulation options
type contextKey string

const (
	loggerKey contextKey = "logger"
	quietKey  contextKey = "quiet"
)

// WithLogger attaches a logger to the context. Long-running surfaces use it to
// trace simulations.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFrom returns the logger in the context, or one that discards everything
func loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithQuiet suppresses progress messages on stderr
func WithQuiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey, true)
}

// isQuiet returns whether progress messages are suppressed
func isQuiet(ctx context.Context) bool {
	val := ctx.Value(quietKey)
	if val == nil {
		return false // default: show progress
	}
	quiet, ok := val.(bool)
	return ok && quiet
}
