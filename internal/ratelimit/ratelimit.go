// Package ratelimit provides a keyed rate limiter using token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cleanupInterval controls how often idle limiters are discarded.
const cleanupInterval = 10 * time.Minute

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent rate limiter.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}

	go krl.cleanup()

	return krl
}

// Allow checks if a request for the given key should be allowed.
// Returns immediately without blocking.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// getLimiter returns the limiter for a key, creating one if needed.
func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	krl.mu.RLock()
	e, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		krl.mu.Lock()
		e.lastSeen = time.Now()
		krl.mu.Unlock()
		return e.limiter
	}

	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock.
	if e, exists = krl.limiters[key]; exists {
		e.lastSeen = time.Now()
		return e.limiter
	}

	e = &entry{
		limiter:  rate.NewLimiter(krl.limit, krl.burst),
		lastSeen: time.Now(),
	}
	krl.limiters[key] = e
	return e.limiter
}

// cleanup periodically discards limiters that have been idle long enough to
// refill completely.
func (krl *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-cleanupInterval)
			krl.mu.Lock()
			for key, e := range krl.limiters {
				if e.lastSeen.Before(cutoff) {
					delete(krl.limiters, key)
				}
			}
			krl.mu.Unlock()
		}
	}
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}
