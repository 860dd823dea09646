// Package ratelimit provides sliding-window request limiters keyed by an
// arbitrary string (a chat session id, or a user id when no session exists
// yet).
package ratelimit

import "time"

// Limiter admits or denies one request for the given key. A denied request
// does not count toward the window.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}
