package auth

import (
	"sync"
	"time"
)

// RateLimiter implements a simple sliding-window rate limiter keyed by string.
// Good enough for a single process; the API fleet is small and per-user
// hot keys are short-lived.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	requests map[string][]time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:    limit,
		window:   window,
		requests: make(map[string][]time.Time),
	}

	go rl.cleanup()

	return rl
}

// NewIPRateLimiter creates a per-IP limiter with a per-minute budget
func NewIPRateLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(perMinute, time.Minute)
}

// NewUserRateLimiter creates a per-user limiter with a per-minute budget
func NewUserRateLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(perMinute, time.Minute)
}

// Allow reports whether a request for key is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[key][:0]
	for _, t := range rl.requests[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.requests[key] = recent
		return false
	}

	rl.requests[key] = append(recent, now)
	return true
}

// cleanup periodically drops keys with no recent requests
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-rl.window)
		for key, times := range rl.requests {
			live := false
			for _, t := range times {
				if t.After(cutoff) {
					live = true
					break
				}
			}
			if !live {
				delete(rl.requests, key)
			}
		}
		rl.mu.Unlock()
	}
}
