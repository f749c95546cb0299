// Package resilience provides bounded retry with exponential backoff and full
// jitter for calls to external collaborators (payment gateway, analytics sink).
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"time"
)

// Policy describes how an operation should be retried. A Policy is a value
// object constructed per call-site; it carries no mutable state between
// invocations.
type Policy struct {
	// Label identifies the call class in logs and metrics (e.g. "payment").
	Label string
	// MaxRetries is the number of additional attempts after the initial one,
	// so an operation is invoked at most MaxRetries+1 times.
	MaxRetries int
	// InitialDelay is the backoff delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the computed backoff delay.
	MaxDelay time.Duration
	// Multiplier is the exponential backoff factor between retries.
	Multiplier float64
	// Jitter, when enabled, sleeps for a uniformly random duration in
	// [0, delay] instead of the fixed delay, so concurrent callers do not
	// retry in lockstep.
	Jitter bool
	// IsRetryable overrides the default error classification when non-nil.
	IsRetryable func(error) bool
}

// Observer is invoked after each retry decision, before the sleep, with the
// retry number (1-based), the error that triggered it and the effective delay.
// It must not block; it exists for logging and metrics only.
type Observer func(retry int, err error, delay time.Duration)

// StatusCoder is implemented by errors that carry an HTTP-like status code,
// such as gateway client errors. The default classification treats 4xx
// (except 429) as permanent and everything else as transient.
type StatusCoder interface {
	StatusCode() int
}

// permanentError marks an error as non-retryable regardless of classification.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that Do fails fast without consuming the retry budget.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// DefaultRetryable classifies an error using structured signals rather than
// message text: errors marked Permanent and HTTP-like client errors
// (status in [400,500) other than 429) are not retryable; 429, 5xx, network
// failures and everything else default to retryable.
func DefaultRetryable(err error) bool {
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		if code >= 400 && code < 500 && code != 429 {
			return false
		}
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return true
}

// Do executes op with retries according to policy. See DoWithObserver.
func Do[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	return DoWithObserver(ctx, policy, op, nil)
}

// DoWithObserver executes op, retrying transient failures with exponentially
// increasing, optionally jittered delay. The attempt budget is MaxRetries+1
// total invocations. A non-retryable error, or exhaustion of the budget,
// propagates the most recent error to the caller unwrapped so callers can
// still match on its type. The observer, when non-nil, is called once per
// retry decision before the sleep.
func DoWithObserver[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error), observe Observer) (T, error) {
	var zero T

	isRetryable := policy.IsRetryable
	if isRetryable == nil {
		isRetryable = DefaultRetryable
	}

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == policy.MaxRetries {
			return zero, lastErr
		}

		retry := attempt + 1
		delay := backoffDelay(policy, retry)
		if policy.Jitter && delay > 0 {
			delay = time.Duration(rand.Int63n(int64(delay) + 1))
		}

		if observe != nil {
			observe(retry, err, delay)
		}

		if err := sleep(ctx, delay); err != nil {
			return zero, lastErr
		}
	}

	// Unreachable: the loop always returns from within.
	return zero, lastErr
}

// backoffDelay computes the pre-jitter delay before the given retry (1-based):
// min(MaxDelay, InitialDelay * Multiplier^(retry-1)).
func backoffDelay(policy Policy, retry int) time.Duration {
	delay := float64(policy.InitialDelay) * math.Pow(policy.Multiplier, float64(retry-1))
	if max := float64(policy.MaxDelay); policy.MaxDelay > 0 && delay > max {
		delay = max
	}
	return time.Duration(delay)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
