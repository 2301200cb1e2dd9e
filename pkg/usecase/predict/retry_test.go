package predict_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/usecase/predict"
)

func testPolicy() predict.Policy {
	return predict.Policy{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
		Retryable:   predict.IsRetryable,
	}
}

func TestPolicySucceedsFirstTry(t *testing.T) {
	calls := 0
	attempts, err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	}, nil)

	gt.NoError(t, err)
	gt.Equal(t, attempts, 1)
	gt.Equal(t, calls, 1)
}

func TestPolicyRetriesUpstreamFailures(t *testing.T) {
	calls := 0
	var retries []int
	attempts, err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return goerr.Wrap(model.ErrUpstream, "transient")
		}
		return nil
	}, func(attempt, max int) {
		retries = append(retries, attempt)
		gt.Equal(t, max, 3)
	})

	gt.NoError(t, err)
	gt.Equal(t, attempts, 3)
	gt.Equal(t, calls, 3)
	gt.Equal(t, retries, []int{2, 3})
}

func TestPolicyExhaustsBudget(t *testing.T) {
	calls := 0
	attempts, err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return goerr.Wrap(model.ErrUpstream, "still down")
	}, nil)

	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrServerError))
	gt.Equal(t, attempts, 3)
	gt.Equal(t, calls, 3)
}

func TestPolicyStopsOnNonRetryable(t *testing.T) {
	calls := 0
	attempts, err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return goerr.Wrap(model.ErrUnauthorized, "bad token")
	}, nil)

	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrUnauthorized))
	gt.False(t, errors.Is(err, model.ErrServerError))
	gt.Equal(t, attempts, 1)
	gt.Equal(t, calls, 1)
}

func TestPolicyCancelDuringDelay(t *testing.T) {
	policy := predict.Policy{
		MaxAttempts: 3,
		Delay:       time.Hour,
		Retryable:   predict.IsRetryable,
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan struct{})

	var attempts int
	var err error
	go func() {
		defer close(done)
		attempts, err = policy.Do(ctx, func(ctx context.Context) error {
			calls++
			return goerr.Wrap(model.ErrUpstream, "transient")
		}, nil)
	}()

	// let the first attempt fail and enter the delay
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after cancel")
	}

	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrCancelled))
	gt.Equal(t, attempts, 1)
	gt.Equal(t, calls, 1)
}

func TestIsRetryable(t *testing.T) {
	gt.True(t, predict.IsRetryable(goerr.Wrap(model.ErrUpstream, "503")))
	gt.False(t, predict.IsRetryable(goerr.Wrap(model.ErrUnauthorized, "401")))
	gt.False(t, predict.IsRetryable(goerr.Wrap(model.ErrRateLimited, "429")))
	gt.False(t, predict.IsRetryable(goerr.Wrap(model.ErrInvalidInput, "400")))
	gt.False(t, predict.IsRetryable(errors.New("plain")))
}
