package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrServiceUnavailable means the health probe failed; the submission was
	// never attempted and is not retried.
	ErrServiceUnavailable = goerr.New("prediction service is unavailable")

	// ErrUnauthorized maps a 401 from the prediction service. Not retried.
	ErrUnauthorized = goerr.New("authentication required")

	// ErrRateLimited maps a 429 from the prediction service. Not retried.
	ErrRateLimited = goerr.New("rate limited by prediction service")

	// ErrInvalidInput covers rejected local input and a 400 from the service.
	ErrInvalidInput = goerr.New("invalid prediction input")

	// ErrUpstream marks retryable failures: 500/502/503/504 or a
	// transport-level connectivity error.
	ErrUpstream = goerr.New("prediction service upstream failure")

	// ErrServerError is surfaced once the retry budget is exhausted.
	ErrServerError = goerr.New("prediction service kept failing")

	// ErrCancelled is surfaced when the caller cancels during the retry delay.
	ErrCancelled = goerr.New("prediction cancelled")

	// ErrPredictionFailed covers unclassified non-2xx responses.
	ErrPredictionFailed = goerr.New("prediction failed")
)
