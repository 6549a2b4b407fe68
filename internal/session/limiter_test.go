package session

import (
	"testing"
	"time"
)

func newTestLimiter(maxAttempts int, window time.Duration) (*AttemptLimiter, *time.Time) {
	l := NewAttemptLimiter(maxAttempts, window)
	now := time.Now()
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_AllowsUntilThreshold(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)
	key := UserKey(1)

	for i := 0; i < 5; i++ {
		if !l.Allowed(key) {
			t.Fatalf("attempt %d: expected allowed", i+1)
		}
		l.RecordFailure(key)
	}

	if l.Allowed(key) {
		t.Fatalf("expected attempt beyond threshold to be rejected")
	}
}

func TestLimiter_WindowRollover(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)
	key := UserKey(2)

	for i := 0; i < 3; i++ {
		l.RecordFailure(key)
	}
	if l.Allowed(key) {
		t.Fatalf("expected lockout inside window")
	}

	*now = now.Add(time.Minute)

	if !l.Allowed(key) {
		t.Fatalf("expected counter to reset after window elapsed")
	}
}

func TestLimiter_FailureAfterRolloverStartsFreshWindow(t *testing.T) {
	l, now := newTestLimiter(3, time.Minute)
	key := UserKey(3)

	l.RecordFailure(key)
	*now = now.Add(2 * time.Minute)

	l.RecordFailure(key)
	l.RecordFailure(key)

	// Only two failures in the current window; the old one expired.
	if !l.Allowed(key) {
		t.Fatalf("expected attempts to be allowed in fresh window")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	l.RecordFailure(UserKey(10))
	l.RecordFailure(UserKey(10))

	if l.Allowed(UserKey(10)) {
		t.Fatalf("expected user 10 to be locked out")
	}
	if !l.Allowed(UserKey(11)) {
		t.Fatalf("expected user 11 to be unaffected")
	}
	if !l.Allowed(UserAddrKey(10, "10.0.0.1")) {
		t.Fatalf("expected user+addr key to count separately")
	}
}

func TestLimiter_ExplicitReset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	key := UserKey(4)

	l.RecordFailure(key)
	if l.Allowed(key) {
		t.Fatalf("expected lockout")
	}

	l.Reset(key)

	if !l.Allowed(key) {
		t.Fatalf("expected explicit reset to clear the counter")
	}
}

func TestLimiter_SweepExpired(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)

	l.RecordFailure(UserKey(20))
	l.RecordFailure(UserKey(21))

	*now = now.Add(2 * time.Minute)
	l.RecordFailure(UserKey(22))

	if removed := l.SweepExpired(); removed != 2 {
		t.Fatalf("SweepExpired removed %d counters, want 2", removed)
	}

	l.mu.Lock()
	remaining := len(l.counters)
	l.mu.Unlock()
	if remaining != 1 {
		t.Fatalf("expected 1 live counter after sweep, got %d", remaining)
	}
}
