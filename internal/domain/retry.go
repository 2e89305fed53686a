package domain

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/xcontext"
)

// sleep waits for d unless ctx ends first.
var sleep = func(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// withRetry runs fn again while it fails with a retryable error, up to the
// configured number of attempts. The wait doubles after every attempt.
func withRetry[T any](ctx context.Context, name string, fn func() (T, error)) (T, error) {
	cfg := xcontext.Configs(ctx).Retry
	attempts := max(cfg.MaxAttempts, 1)
	backoff := cfg.Backoff.Duration

	var result T
	var err error
	for i := 0; i < attempts; i++ {
		result, err = fn()
		if err == nil || !errorx.Retryable(err) {
			return result, err
		}

		if i+1 == attempts {
			break
		}

		xcontext.Logger(ctx).Debugf("Retry %s after attempt %d: %v", name, i+1, err)
		if err := sleep(ctx, backoff<<i); err != nil {
			return result, errorx.New(errorx.Unavailable, "Request cancelled")
		}
	}

	xcontext.Logger(ctx).Warnf("Give up %s after %d attempts: %v", name, attempts, err)
	return result, err
}
