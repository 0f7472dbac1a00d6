package retry

import (
	"context"
	"time"
)

// Policy is a bounded exponential-backoff retry. It exists for dependency
// failures only (store or sequence-service hiccups); guard and validation
// failures must never be retried.
type Policy struct {
	MaxAttempts int           // total attempts including the first
	BaseDelay   time.Duration // delay before the 2nd attempt; doubles each retry
}

// Default is the orchestrator-boundary policy: 3 attempts, 50ms base delay.
var Default = Policy{MaxAttempts: 3, BaseDelay: 50 * time.Millisecond}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// Returns the last error. fn may return (retryable=false) to stop early.
func (p Policy) Do(ctx context.Context, fn func() (retryable bool, err error)) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.BaseDelay
	var lastErr error
	for i := 0; i < attempts; i++ {
		retryable, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || i == attempts-1 {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}
