package hub

import (
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	defaultRetryAttempts = 3
	defaultBaseDelay     = 1 * time.Second
	defaultMaxDelay      = 30 * time.Second
)

// RetryConfig defines retry behavior for failed API requests.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration

	// RetryOn lists the HTTP status codes worth retrying.
	RetryOn []int
}

// DefaultRetryConfig returns the retry policy used for API lookups: rate
// limiting and transient server errors are retried, everything else fails
// immediately.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: defaultRetryAttempts,
		BaseDelay:   defaultBaseDelay,
		MaxDelay:    defaultMaxDelay,
		RetryOn: []int{
			http.StatusForbidden, // rate limit responses use 403
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// ShouldRetry reports whether a response status code warrants a retry.
func (rc *RetryConfig) ShouldRetry(statusCode int) bool {
	for _, code := range rc.RetryOn {
		if code == statusCode {
			return true
		}
	}
	return false
}

// Delay calculates the backoff before retry number attempt, with jitter to
// avoid synchronized retries from parallel workflow jobs.
func (rc *RetryConfig) Delay(attempt int) time.Duration {
	delay := rc.BaseDelay * time.Duration(1<<uint(attempt))

	jitter := time.Duration(float64(delay) * 0.1 * (rand.Float64()*2 - 1))
	delay += jitter

	if delay < 0 {
		delay = rc.BaseDelay
	}
	if delay > rc.MaxDelay {
		delay = rc.MaxDelay
	}
	return delay
}

// IsRetryableError reports whether a transport-level error is worth retrying.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}
