package summarize

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Retry runs an operation with a bounded number of attempts, waiting between
// rate-limited attempts. Only ErrRateLimited is retried; any other error is
// final.
type Retry struct {
	MaxAttempts int
	Backoff     time.Duration

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetry(maxAttempts int, backoff time.Duration) *Retry {
	return &Retry{
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		sleep:       sleepContext,
	}
}

// Do calls fn until it succeeds, fails with a non-retryable error, or the
// attempt budget runs out.
func (r *Retry) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return err
		}
		if attempt == r.MaxAttempts {
			break
		}

		slog.Warn("Rate limited, backing off", "attempt", attempt, "backoff", r.Backoff)
		if sleepErr := r.sleep(ctx, r.Backoff); sleepErr != nil {
			return sleepErr
		}
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
