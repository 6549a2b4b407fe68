package session

import "sync"

// userLockStripes bounds the number of distinct mutexes; two users may share
// a stripe, which affects only latency, never correctness.
const userLockStripes = 64

// UserLocks provides the per-user critical section required by the unlock,
// lock and rotation protocols: "read session/attempt state → decide → mutate
// session/attempt state" must be one atomic unit per user.
//
// The lock is small-scope by contract — held for the decision and the state
// mutation only, never across Entry Store I/O or AEAD computation, so one
// user's slow storage call can never block another user's unlock.
type UserLocks struct {
	stripes [userLockStripes]sync.Mutex
}

// NewUserLocks constructs a [UserLocks].
func NewUserLocks() *UserLocks {
	return &UserLocks{}
}

// Lock acquires the critical section for userID.
func (u *UserLocks) Lock(userID int64) {
	u.stripes[uint64(userID)%userLockStripes].Lock()
}

// Unlock releases the critical section for userID.
func (u *UserLocks) Unlock(userID int64) {
	u.stripes[uint64(userID)%userLockStripes].Unlock()
}
