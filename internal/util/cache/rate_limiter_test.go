package cache_utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Allow_StaysWithinBudget(t *testing.T) {
	limiter := NewRateLimiter(GetValkeyClient())
	clientID := "client-" + uuid.New().String()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(clientID, "test_action", 5, time.Minute)

		assert.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be within budget", i+1)
	}
}

func Test_Allow_DeniesBeyondBudget(t *testing.T) {
	limiter := NewRateLimiter(GetValkeyClient())
	clientID := "client-" + uuid.New().String()

	for i := 0; i < 5; i++ {
		_, err := limiter.Allow(clientID, "test_action", 5, time.Minute)
		assert.NoError(t, err)
	}

	allowed, err := limiter.Allow(clientID, "test_action", 5, time.Minute)

	assert.NoError(t, err)
	assert.False(t, allowed)
}

func Test_Allow_TracksActionsIndependently(t *testing.T) {
	limiter := NewRateLimiter(GetValkeyClient())
	clientID := "client-" + uuid.New().String()

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(clientID, "first_action", 3, time.Minute)
		assert.NoError(t, err)
	}

	allowed, err := limiter.Allow(clientID, "second_action", 3, time.Minute)

	assert.NoError(t, err)
	assert.True(t, allowed)
}
