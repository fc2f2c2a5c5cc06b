package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy is a fixed retry count with exponential backoff.
// Retries=2 means up to three attempts.
type Policy struct {
	Retries int
	Base    time.Duration
}

// MaxDelay caps a single backoff sleep.
const MaxDelay = time.Minute

// Delay returns the sleep before retrying after the given failed attempt
// (0-based): Base, 2*Base, 4*Base, ... saturating at MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 || p.Base <= 0 {
		return 0
	}
	if attempt >= 62 || p.Base > MaxDelay>>attempt {
		return MaxDelay
	}
	return p.Base << attempt
}

// Do runs fn until it succeeds or the policy is exhausted. Cancellation is
// checked before every attempt and while sleeping, and is returned as
// ctx.Err() rather than wrapped.
func Do[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= p.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		lastErr = err

		if attempt < p.Retries {
			timer := time.NewTimer(p.Delay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return zero, fmt.Errorf("giving up after %d attempts: %w", p.Retries+1, lastErr)
}
