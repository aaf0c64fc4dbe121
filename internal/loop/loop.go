// Package loop runs the fixed-delay polling loops of the commands.
package loop

import (
	"context"
	"time"
)

// Step runs one iteration and returns how long to wait before the next one.
// Zero repeats immediately.
type Step func(ctx context.Context) (time.Duration, error)

// Run calls step until ctx is cancelled (returns nil) or step fails (returns
// its error).
func Run(ctx context.Context, step Step) error {
	for ctx.Err() == nil {
		wait, err := step(ctx)
		if err != nil {
			return err
		}
		if !Sleep(ctx, wait) {
			break
		}
	}
	return nil
}

// Sleep waits for d and reports whether ctx is still live afterwards.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Ticker adapts Sleep to callbacks that take only a duration.
func Ticker(ctx context.Context) func(time.Duration) bool {
	return func(d time.Duration) bool { return Sleep(ctx, d) }
}
