package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter keeps per-key timestamp buckets in a go-cache store so
// stale keys expire on their own instead of accumulating for the life of
// the process.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets *gocache.Cache

	// now is swappable for tests.
	now func() time.Time
}

func NewMemoryLimiter(defaultWindow time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: gocache.New(defaultWindow, 2*defaultWindow),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(key string, limit int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	var stamps []time.Time
	if cached, found := l.buckets.Get(key); found {
		for _, ts := range cached.([]time.Time) {
			if ts.After(cutoff) {
				stamps = append(stamps, ts)
			}
		}
	}

	if len(stamps) >= limit {
		// Deny without recording, so a flood of rejected calls cannot
		// extend the lockout.
		l.buckets.Set(key, stamps, window)
		return false
	}

	stamps = append(stamps, now)
	l.buckets.Set(key, stamps, window)
	return true
}
