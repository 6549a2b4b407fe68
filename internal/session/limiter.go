package session

import (
	"strconv"
	"sync"
	"time"
)

// attemptCounter is one fixed sliding window of failed unlock attempts.
type attemptCounter struct {
	count       int
	windowStart time.Time
}

// AttemptLimiter tracks failed unlock attempts per user (and optionally per
// user+address pair) in a fixed sliding window. Once the count reaches the
// configured maximum within the window, further attempts are rejected until
// the window elapses — regardless of whether the submitted key is correct.
//
// A successful unlock never resets a live window: an attacker cannot launder
// a lockout by guessing correctly once after many failures. Counters reset
// only when their window expires or via explicit administrative clearing.
type AttemptLimiter struct {
	mu       sync.Mutex
	counters map[string]*attemptCounter

	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewAttemptLimiter constructs an [AttemptLimiter] that allows at most
// maxAttempts failures per key within window.
func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		counters:    make(map[string]*attemptCounter),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// UserKey is the limiter key for user-scoped counting.
func UserKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// UserAddrKey is the limiter key for layered user+address counting.
func UserAddrKey(userID int64, addr string) string {
	return strconv.FormatInt(userID, 10) + "|" + addr
}

// Allowed reports whether another unlock attempt is permitted for key.
// It must be consulted before any decryption work: rejection here is a hard
// gate, not a cost-based throttle.
func (l *AttemptLimiter) Allowed(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok {
		return true
	}

	if l.now().Sub(c.windowStart) >= l.window {
		// Window rolled over; the stale counter no longer binds.
		delete(l.counters, key)
		return true
	}

	return c.count < l.maxAttempts
}

// RecordFailure increments key's counter, creating it on first failure.
func (l *AttemptLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowStart) >= l.window {
		l.counters[key] = &attemptCounter{count: 1, windowStart: now}
		return
	}

	c.count++
}

// Reset clears the counter for key. This is the explicit administrative
// clearing path; normal operation relies on window expiry alone.
func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	delete(l.counters, key)
	l.mu.Unlock()
}

// SweepExpired drops counters whose window has elapsed and returns how many
// were removed. Correctness never depends on sweeping — Allowed checks the
// window itself — it only bounds the map's memory footprint.
func (l *AttemptLimiter) SweepExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, c := range l.counters {
		if now.Sub(c.windowStart) >= l.window {
			delete(l.counters, key)
			removed++
		}
	}
	return removed
}
