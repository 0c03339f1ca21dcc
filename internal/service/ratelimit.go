package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket is an in-memory per-key rate limiter backed by one
// rate.Limiter per key. It guards the login and signup forms, keyed by client
// IP. It is safe for concurrent use; keys idle for longer than the idle TTL are
// dropped.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewTokenBucket creates a rate limiter that allows bursts of up to burst
// requests per key, refilling at perSecond tokens per second. It starts a
// background goroutine that periodically removes stale keys until Stop is
// called.
func NewTokenBucket(perSecond float64, burst int) *TokenBucket {
	tb := &TokenBucket{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go tb.cleanupLoop(5 * time.Minute)
	return tb
}

// PerMinute builds a limiter allowing n requests per minute with a burst of n.
func PerMinute(n int) *TokenBucket {
	return NewTokenBucket(float64(n)/60, n)
}

// Allow reports whether the given key is allowed to proceed under the rate limit.
// Each call consumes one token. Returns false if the bucket is empty.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(tb.limit, tb.burst)}
		tb.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (tb *TokenBucket) Stop() {
	tb.stopOnce.Do(func() { close(tb.stop) })
}

// Len reports how many keys are currently tracked.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

func (tb *TokenBucket) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tb.Sweep()
		case <-tb.stop:
			return
		}
	}
}

// Sweep removes keys that have not been seen within the idle TTL.
func (tb *TokenBucket) Sweep() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	cutoff := tb.now().Add(-tb.idleTTL)
	for key, b := range tb.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
