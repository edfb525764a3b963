// Package httputil provides retry support for HTTP fetches of remote
// catalog documents. Transient failures (network errors, 5xx responses)
// are wrapped as RetryableError so that Retry knows to attempt them again;
// permanent failures (404, malformed documents) surface immediately.
package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. Fetch implementations wrap
// network failures and 5xx responses with it; anything else is treated as
// permanent and returned on the first attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, fails permanently, or attempts are
// exhausted. The delay between attempts doubles each time. Waiting is
// interrupted by ctx cancellation, in which case ctx.Err() is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !errors.As(err, new(*RetryableError)) {
			return err
		}
		if attempt >= attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// RetryWithBackoff runs fn with the default policy: 3 attempts starting
// at a 1 second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
