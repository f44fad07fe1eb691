package llm

import (
	"context"
	"errors"
	"time"
)

// withRetry runs fn up to attempts times. After failed attempt i (zero
// based) it waits (i+1)*backoff before trying again, so waits grow 1x, 2x,
// 3x. It stops early when ctx is done or fn reports a permanent error.
func withRetry(ctx context.Context, attempts int, backoff time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || isPermanent(lastErr) || i == attempts-1 {
			break
		}
		if backoff <= 0 {
			continue
		}
		timer := time.NewTimer(time.Duration(i+1) * backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

// permanentError marks failures that a retry cannot fix.
type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
