package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr struct {
	code int
}

func (e *statusErr) Error() string   { return "status error" }
func (e *statusErr) StatusCode() int { return e.code }

func fastPolicy(maxRetries int) Policy {
	return Policy{
		Label:        "test",
		MaxRetries:   maxRetries,
		InitialDelay: time.Millisecond,
		MaxDelay:     4 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoRetriesUpToBudget(t *testing.T) {
	transient := errors.New("connection reset")
	calls := 0

	_, err := Do(context.Background(), fastPolicy(3), func(ctx context.Context) (int, error) {
		calls++
		return 0, transient
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, transient, "original error must propagate")
	assert.Equal(t, 4, calls, "maxRetries+1 total invocations")
}

func TestDoFailsFastOnNonRetryable(t *testing.T) {
	calls := 0

	_, err := Do(context.Background(), fastPolicy(5), func(ctx context.Context) (string, error) {
		calls++
		return "", &statusErr{code: 401}
	})

	require.Error(t, err)
	var se *statusErr
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, 1, calls, "non-retryable error must not be retried")
}

func TestDoFailsFastOnPermanent(t *testing.T) {
	calls := 0
	declined := errors.New("card declined")

	_, err := Do(context.Background(), fastPolicy(5), func(ctx context.Context) (string, error) {
		calls++
		return "", Permanent(declined)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, declined)
	assert.Equal(t, 1, calls)
}

func TestDoRecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	var observed []time.Duration

	result, err := DoWithObserver(context.Background(), fastPolicy(3), func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("ECONNRESET")
		}
		return "ok", nil
	}, func(retry int, err error, delay time.Duration) {
		observed = append(observed, delay)
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls, "two failures then success")
	require.Len(t, observed, 2, "observer fires once per retry decision")
	for _, d := range observed {
		assert.LessOrEqual(t, d, 4*time.Millisecond, "delay capped at MaxDelay")
	}
}

func TestBackoffDelayGrowthIsBounded(t *testing.T) {
	policy := Policy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
	}

	prev := time.Duration(0)
	for retry := 1; retry <= 10; retry++ {
		d := backoffDelay(policy, retry)
		assert.GreaterOrEqual(t, d, prev, "delays must be non-decreasing")
		assert.LessOrEqual(t, d, policy.MaxDelay, "delays must not exceed MaxDelay")
		prev = d
	}
	assert.Equal(t, 100*time.Millisecond, backoffDelay(policy, 1))
	assert.Equal(t, 200*time.Millisecond, backoffDelay(policy, 2))
	assert.Equal(t, time.Second, backoffDelay(policy, 5), "capped once growth passes MaxDelay")
}

func TestJitterStaysWithinComputedDelay(t *testing.T) {
	policy := fastPolicy(4)
	policy.Jitter = true

	var observed []time.Duration
	_, err := DoWithObserver(context.Background(), policy, func(ctx context.Context) (int, error) {
		return 0, errors.New("transient")
	}, func(retry int, err error, delay time.Duration) {
		observed = append(observed, delay)
	})

	require.Error(t, err)
	require.Len(t, observed, 4)
	for i, d := range observed {
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, backoffDelay(policy, i+1), "jittered delay within [0, computed]")
	}
}

func TestDoStopsSleepingOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := Policy{
		MaxRetries:   3,
		InitialDelay: time.Minute,
		MaxDelay:     time.Minute,
		Multiplier:   1.0,
	}

	transient := errors.New("transient")
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, policy, func(ctx context.Context) (int, error) {
			calls++
			return 0, transient
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, transient, "last operation error is surfaced, not the context error")
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not abort the backoff sleep on cancellation")
	}
}

func TestDefaultRetryableClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"unauthorized", &statusErr{code: 401}, false},
		{"bad request", &statusErr{code: 400}, false},
		{"not found", &statusErr{code: 404}, false},
		{"rate limited", &statusErr{code: 429}, true},
		{"server error", &statusErr{code: 500}, true},
		{"bad gateway", &statusErr{code: 502}, true},
		{"plain error", errors.New("boom"), true},
		{"permanent marker", Permanent(errors.New("declined")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, DefaultRetryable(tt.err))
		})
	}
}

func TestPolicyProfiles(t *testing.T) {
	payment := PaymentPolicy()
	assert.Equal(t, "payment", payment.Label)
	assert.Equal(t, 3, payment.MaxRetries)
	assert.True(t, payment.Jitter)

	analytics := AnalyticsPolicy()
	assert.Equal(t, "analytics", analytics.Label)
	assert.Equal(t, 1, analytics.MaxRetries)
}
