// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

// Package session holds the ephemeral per-login state of the vault core: the
// in-memory binding of a user to their active encryption key, the failed
// unlock counters, and the per-user critical sections that serialize unlock,
// lock and rotation for a single user without blocking anyone else.
//
// Nothing in this package is ever persisted. A process restart forgets every
// session and every counter, which is exactly the zero-knowledge property the
// server is built around.
package session

import (
	"sync"
	"time"
)

// UnlockSession binds a user to the raw encryption key submitted at unlock.
// It exists only in process memory; no field of it is ever serialized to
// persistent storage or written to a log.
type UnlockSession struct {
	UserID        int64
	EncryptionKey []byte
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// expired reports whether the session is past its lifetime at time now.
func (s *UnlockSession) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// registryShards spreads users across independently locked shards so that
// unrelated users' unlock traffic is never serialized on one mutex.
const registryShards = 32

type registryShard struct {
	mu       sync.RWMutex
	sessions map[int64]*UnlockSession
}

// Registry is the owner of all live unlock sessions. At most one session
// exists per user; installing a new one replaces any prior binding. Expiry
// is checked lazily at access time.
//
// A Registry is constructed once at process start and passed by reference to
// every component that needs it; there is no package-level instance.
type Registry struct {
	shards [registryShards]*registryShard
	ttl    time.Duration
	now    func() time.Time
}

// NewRegistry constructs a [Registry] whose sessions live for ttl after
// creation.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		ttl: ttl,
		now: time.Now,
	}
	for i := range r.shards {
		r.shards[i] = &registryShard{sessions: make(map[int64]*UnlockSession)}
	}
	return r
}

func (r *Registry) shard(userID int64) *registryShard {
	// userID is a positive sequence; the remainder spreads it evenly.
	return r.shards[uint64(userID)%registryShards]
}

// Create unconditionally installs a session binding userID to key, replacing
// any prior session for that user. No validation of key correctness happens
// here — that is the unlock protocol's job.
//
// The key slice is copied so the caller's buffer can be zeroed or reused.
func (r *Registry) Create(userID int64, key []byte) *UnlockSession {
	now := r.now()
	own := make([]byte, len(key))
	copy(own, key)

	s := &UnlockSession{
		UserID:        userID,
		EncryptionKey: own,
		CreatedAt:     now,
		ExpiresAt:     now.Add(r.ttl),
	}

	sh := r.shard(userID)
	sh.mu.Lock()
	sh.sessions[userID] = s
	sh.mu.Unlock()

	return s
}

// Get returns the live session for userID, or nil if none exists or the
// session has expired. An expired entry is removed as a side effect.
func (r *Registry) Get(userID int64) *UnlockSession {
	sh := r.shard(userID)

	sh.mu.RLock()
	s, ok := sh.sessions[userID]
	sh.mu.RUnlock()

	if !ok {
		return nil
	}

	if s.expired(r.now()) {
		sh.mu.Lock()
		// Re-check under the write lock: a fresh session may have been
		// installed between the read and write sections.
		if cur, ok := sh.sessions[userID]; ok && cur == s {
			delete(sh.sessions, userID)
		}
		sh.mu.Unlock()
		return nil
	}

	return s
}

// EncryptionKey returns the key bound to userID's live session, or nil if no
// session exists or it has expired.
func (r *Registry) EncryptionKey(userID int64) []byte {
	s := r.Get(userID)
	if s == nil {
		return nil
	}
	return s.EncryptionKey
}

// Clear removes userID's session binding. Clearing an absent session is not
// an error; the operation is idempotent.
func (r *Registry) Clear(userID int64) {
	sh := r.shard(userID)
	sh.mu.Lock()
	delete(sh.sessions, userID)
	sh.mu.Unlock()
}
