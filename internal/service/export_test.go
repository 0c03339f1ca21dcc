package service

import "time"

// SetClock replaces the limiter's time source in tests.
func (tb *TokenBucket) SetClock(now func() time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.now = now
}
