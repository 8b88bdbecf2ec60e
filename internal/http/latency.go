package http

import (
	"context"
	"time"
)

// Delays is the artificial latency of each mock endpoint.
type Delays struct {
	Account  time.Duration
	Shipping time.Duration
	Payment  time.Duration
	Complete time.Duration
	Summary  time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Account:  500 * time.Millisecond,
		Shipping: 600 * time.Millisecond,
		Payment:  700 * time.Millisecond,
		Complete: 800 * time.Millisecond,
		Summary:  600 * time.Millisecond,
	}
}

// simulateLatency waits for d or until ctx is done.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
