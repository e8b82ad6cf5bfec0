package bison

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how often and how long a single logical call is retried.
//
// The delay before retry n (1-based) is BaseDelay·2^(n-1), capped at MaxDelay.
// MaxElapsed limits the total time spent waiting between attempts; a retry
// whose delay would exceed the remaining budget is not taken.
type RetryPolicy struct {
	MaxRetries int

	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxElapsed time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,

		BaseDelay:  time.Second,
		MaxDelay:   10 * time.Second,
		MaxElapsed: 30 * time.Second,
	}
}

// Delay returns the wait before retry n (1-based).
func (p RetryPolicy) Delay(retry int) time.Duration {
	b := p.backOff()

	var d time.Duration

	for range max(retry, 1) {
		d = b.NextBackOff()
	}

	return d
}

func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval: max(p.BaseDelay, 0),
		Multiplier:      2,
		MaxInterval:     p.MaxDelay,
	}

	if b.MaxInterval <= 0 {
		b.MaxInterval = time.Duration(math.MaxInt64)
	}

	b.Reset()

	return b
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()

	case <-t.C:
		return nil
	}
}
