package core

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RunDeferred waits for delay before running fn. The wait is cancelled with ctx,
// in which case fn never runs. A zero delay runs fn right away.
func RunDeferred[T any](ctx context.Context, delay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if delay <= 0 {
		return fn()
	}

	if !isQuiet(ctx) {
		_, _ = fmt.Fprintf(os.Stderr, "⏳ Running simulation (%s)...\n", delay)
	}
	loggerFrom(ctx).Debug("deferring simulation", "delay", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("simulation cancelled: %w", ctx.Err())
	case <-timer.C:
		return fn()
	}
}
