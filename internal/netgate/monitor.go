package netgate

import (
	"context"
	"time"
)

// Invalidator is implemented by checkers that keep verdicts around.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Fresh drops any cached verdict held by c and dials again. The new
// Status replaces the cached one, so other readers see it too.
func Fresh(ctx context.Context, c Checker) Status {
	if inv, ok := c.(Invalidator); ok {
		// A failed delete only means the next Probe may be served stale.
		_ = inv.Invalidate(ctx)
	}
	return c.Probe(ctx)
}

// Watch probes c immediately and then every interval until ctx is done,
// handing each Status to report. Every report comes from a live dial.
func Watch(ctx context.Context, c Checker, interval time.Duration, report func(Status)) {
	if interval <= 0 {
		interval = time.Minute
	}
	report(Fresh(ctx, c))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report(Fresh(ctx, c))
		}
	}
}
