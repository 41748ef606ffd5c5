package app

import (
	"context"
	"time"

	"github.com/roostlabs/roost/internal/store"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that re-fetches listings at a
// fixed cadence, backing off exponentially while the broker is unreachable.
// It returns immediately.
func StartPoller(ctx context.Context, listings *store.Listings, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			wait := calculateBackoff(failures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}

			listings.Fetch(ctx, true)
			if listings.Err() != "" {
				failures++
			} else {
				failures = 0
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
