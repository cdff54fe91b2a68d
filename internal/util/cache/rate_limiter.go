package cache_utils

import (
	"time"

	"github.com/valkey-io/valkey-go"
)

// RateLimiter caps how often a client may perform an action. Attempts
// are counted in a bucket that expires with the window, so the budget
// resets on its own without any cleanup pass.
type RateLimiter struct {
	counter *Counter
}

func NewRateLimiter(client valkey.Client) *RateLimiter {
	return &RateLimiter{
		counter: NewCounter(client, "rate_limit:"),
	}
}

// Allow records one attempt and reports whether the client is still
// within budget for the current window.
func (r *RateLimiter) Allow(
	clientID string,
	action string,
	maxAttempts int,
	window time.Duration,
) (bool, error) {
	attempts, err := r.counter.IncrBy(action+":"+clientID, 1, window)
	if err != nil {
		return true, err
	}

	return attempts <= int64(maxAttempts), nil
}
