package liveness

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// RetryConfig configures retry behavior for liveness probes. Retrying is a
// concern of this collaborator only; the metric core never retries.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// DefaultRetryConfig returns the default probe retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		BackoffFactor:  2.0,
	}
}

// Backoff calculates the backoff duration for a given attempt with jitter
// to avoid probing a host in lockstep.
func (rc RetryConfig) Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	backoff := float64(rc.InitialBackoff) * math.Pow(rc.BackoffFactor, float64(attempt))
	jitter := backoff * 0.25 * (2*rand.Float64() - 1)
	backoff += jitter
	if backoff > float64(rc.MaxBackoff) {
		backoff = float64(rc.MaxBackoff)
	}
	return time.Duration(backoff)
}

// Do executes operation, retrying transient failures with backoff until
// MaxRetries is exhausted or the context ends.
func (rc RetryConfig) Do(ctx context.Context, operation func() error) error {
	var lastErr error
	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("probe cancelled: %w", ctx.Err())
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if attempt == rc.MaxRetries || !transient(lastErr) {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("probe cancelled during backoff: %w", ctx.Err())
		case <-time.After(rc.Backoff(attempt)):
		}
	}
	return lastErr
}

func transient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"timeout",
		"connection refused",
		"connection reset",
		"no such host",
		"temporary",
		"eof",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
