package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newClockedLimiter(window time.Duration) (*MemoryLimiter, *time.Time) {
	limiter := NewMemoryLimiter(window)
	current := time.Now()
	limiter.now = func() time.Time { return current }
	return limiter, &current
}

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	limiter, _ := newClockedLimiter(time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("key", 3, time.Minute), "call %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("key", 3, time.Minute))
}

func TestMemoryLimiterSlidesWindow(t *testing.T) {
	limiter, clock := newClockedLimiter(time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("key", 3, time.Minute))
	}
	assert.False(t, limiter.Allow("key", 3, time.Minute))

	*clock = clock.Add(61 * time.Second)
	assert.True(t, limiter.Allow("key", 3, time.Minute))
}

func TestMemoryLimiterDeniedCallsNotCounted(t *testing.T) {
	limiter, clock := newClockedLimiter(time.Minute)

	assert.True(t, limiter.Allow("key", 1, time.Minute))

	// Hammering the limiter while denied must not extend the lockout.
	for i := 0; i < 10; i++ {
		assert.False(t, limiter.Allow("key", 1, time.Minute))
	}

	*clock = clock.Add(61 * time.Second)
	assert.True(t, limiter.Allow("key", 1, time.Minute))
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newClockedLimiter(time.Minute)

	assert.True(t, limiter.Allow("a", 1, time.Minute))
	assert.False(t, limiter.Allow("a", 1, time.Minute))
	assert.True(t, limiter.Allow("b", 1, time.Minute))
}
