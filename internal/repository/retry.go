package repository

import (
	"context"
	"fmt"
	"time"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 200 * time.Millisecond
)

// withRetry runs fn, retrying transient failures with exponential backoff up
// to retryAttempts total tries. Non-transient failures propagate immediately.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	delay := retryBaseDelay
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("giving up after %d attempts: %w", retryAttempts, err)
}
