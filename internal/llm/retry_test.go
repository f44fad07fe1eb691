package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithRetry_LinearBackoff(t *testing.T) {
	var stamps []time.Time
	err := withRetry(context.Background(), 3, 20*time.Millisecond, func(context.Context) error {
		stamps = append(stamps, time.Now())
		return errors.New("transient")
	})

	assert.EqualError(t, err, "transient")
	if assert.Len(t, stamps, 3) {
		assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 20*time.Millisecond)
		assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 40*time.Millisecond)
	}
}

func TestWithRetry_PermanentStops(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, 0, func(context.Context) error {
		calls++
		return permanent(errors.New("bad request body"))
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_SuccessAfterFailure(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, 0, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("once")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = withRetry(context.Background(), 0, 0, func(context.Context) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, calls)
}
