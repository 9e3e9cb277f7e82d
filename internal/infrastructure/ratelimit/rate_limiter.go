package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a per-user, per-action token bucket.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// RateLimiter throttles message sends per user.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

func newTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) allow() bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Allow reports whether the user may perform the action now. Buckets default
// to 20 actions with a refill of 1 per second.
func (r *RateLimiter) Allow(userID, action string) bool {
	key := userID + ":" + action

	r.mutex.RLock()
	bucket, ok := r.buckets[key]
	r.mutex.RUnlock()

	if !ok {
		r.mutex.Lock()
		if bucket, ok = r.buckets[key]; !ok {
			bucket = newTokenBucket(20, 1, time.Second)
			r.buckets[key] = bucket
		}
		r.mutex.Unlock()
	}

	return bucket.allow()
}

// StartCleanupRoutine drops idle buckets periodically.
func (r *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			r.mutex.Lock()
			for key, bucket := range r.buckets {
				bucket.mutex.Lock()
				idle := time.Since(bucket.lastRefill) > 30*time.Minute
				bucket.mutex.Unlock()
				if idle {
					delete(r.buckets, key)
				}
			}
			r.mutex.Unlock()
		}
	}()
}
