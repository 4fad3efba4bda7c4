package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/stylelens/stylelens/internal/adapterr"
)

// retryTransient runs fn up to attempts times with capped exponential
// backoff, giving up immediately on permanently classified errors and on
// context cancellation. The retry budget is local to one stage.
func retryTransient(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 5 * time.Second

	wrapped := func() error {
		err := fn()
		if err != nil && adapterr.IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(wrapped,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx))
}
