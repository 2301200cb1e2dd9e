package predict

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
)

// Policy is a bounded fixed-delay retry policy. It is a plain value so the
// classification and cancellation behavior can be tested without any
// network in the loop.
type Policy struct {
	// MaxAttempts is the total attempt budget, the first try included
	MaxAttempts int
	// Delay is the fixed wait between attempts
	Delay time.Duration
	// Retryable decides whether a failure consumes another attempt
	Retryable func(error) bool
}

// DefaultPolicy matches the service contract: 3 attempts total, 2 seconds
// apart, retrying only upstream failures.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Retryable:   IsRetryable,
	}
}

// IsRetryable reports whether err is a transient upstream failure
func IsRetryable(err error) bool {
	return errors.Is(err, model.ErrUpstream)
}

// Do runs fn until it succeeds, fails non-retryably, or the budget runs out.
// It returns the number of attempts performed. onRetry, if set, is called
// with the upcoming attempt number before each delay. Cancelling ctx during
// the delay always wins over the timer and yields model.ErrCancelled without
// consuming a further attempt.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error, onRetry func(attempt, max int)) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return attempt, nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return attempt, lastErr
		}
		if attempt == p.MaxAttempts {
			return attempt, goerr.Wrap(model.ErrServerError, "retry budget exhausted",
				goerr.V("attempts", p.MaxAttempts), goerr.V("last_error", lastErr.Error()))
		}

		if onRetry != nil {
			onRetry(attempt+1, p.MaxAttempts)
		}

		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return attempt, goerr.Wrap(model.ErrCancelled, "cancelled while waiting to retry",
				goerr.V("attempt", attempt))
		}
	}

	return p.MaxAttempts, lastErr
}
