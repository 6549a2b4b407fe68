// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/crypto"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
	"github.com/avdeevsm/go-vault-core/internal/utils"
	"github.com/avdeevsm/go-vault-core/models"
)

// unlockService implements the per-session key verification protocol.
//
// The server stores no key and no key derivative, so the only way to tell a
// right key from a wrong one is to attempt an authenticated decryption of
// existing ciphertext. One entry suffices: every entry of a vault is sealed
// under the same master key.
type unlockService struct {
	userRepository  store.UserRepository
	entryRepository store.EntryRepository
	engine          crypto.CipherEngine
	sessions        *session.Registry
	limiter         *session.AttemptLimiter
	locks           *session.UserLocks

	// perAddress additionally budgets failures per (user, remote address)
	// pair so one hostile address cannot starve the account's other clients.
	perAddress bool

	logger *logger.Logger
}

// NewUnlockService wires the unlock protocol to its collaborators. The
// registry, limiter and locks are process-wide singletons shared with the
// rotation and reset services.
func NewUnlockService(
	userRepository store.UserRepository,
	entryRepository store.EntryRepository,
	engine crypto.CipherEngine,
	sessions *session.Registry,
	limiter *session.AttemptLimiter,
	locks *session.UserLocks,
	cfg config.Unlock,
	logger *logger.Logger,
) UnlockService {
	return &unlockService{
		userRepository:  userRepository,
		entryRepository: entryRepository,
		engine:          engine,
		sessions:        sessions,
		limiter:         limiter,
		locks:           locks,
		perAddress:      cfg.PerAddress,
		logger:          logger,
	}
}

// Unlock runs the key verification protocol:
//
//  1. Structurally validate the submitted key. A malformed key is rejected
//     with ErrInvalidKeyFormat and never counts as an attempt.
//  2. Consult the attempt limiter. An exhausted budget short-circuits with
//     ErrTooManyUnlockAttempts before any ciphertext is touched.
//  3. Confirm the account still exists (store.ErrNoUserWasFound otherwise —
//     a valid JWT can outlive its account).
//  4. Fetch one entry. An empty vault has nothing to verify against, so the
//     key is accepted as presented and a session is installed.
//  5. Attempt an authenticated decryption of that entry. A tag mismatch is
//     recorded as a failed attempt and surfaces as ErrInvalidKey.
//  6. On success, install the session. Success does not reset the live
//     failure window: earlier failures keep counting against the budget.
//
// The per-user lock serializes concurrent unlocks for one user but is never
// held across store I/O or AEAD work.
func (u *unlockService) Unlock(ctx context.Context, userID int64, request models.UnlockRequest) (models.UnlockResponse, error) {
	log := logger.FromContext(ctx)

	key, err := decodeKey(request.Key, u.engine.KeySize())
	if err != nil {
		return models.UnlockResponse{}, err
	}
	defer zeroBytes(key)

	limiterKeys := u.limiterKeys(ctx, userID)

	u.locks.Lock(userID)
	allowed := u.allowed(limiterKeys)
	u.locks.Unlock(userID)

	if !allowed {
		u.logger.Audit(zerolog.WarnLevel).
			Int64("user_id", userID).
			Msg("unlock rejected, attempt budget exhausted")
		return models.UnlockResponse{}, ErrTooManyUnlockAttempts
	}

	if _, err := u.userRepository.FindUserByID(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user lookup failed during unlock")
		return models.UnlockResponse{}, fmt.Errorf("user lookup failed during unlock: %w", err)
	}

	probe, err := u.entryRepository.GetAnyEntry(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrEntryNotFound) {
		log.Err(err).Int64("user_id", userID).Msg("failed to fetch verification entry")
		return models.UnlockResponse{}, fmt.Errorf("failed to fetch verification entry: %w", err)
	}

	if err == nil {
		// AEAD work happens outside the user lock.
		if _, decErr := u.engine.Decrypt(probe.Ciphertext, probe.IV, probe.AuthTag, key); decErr != nil {
			if !errors.Is(decErr, crypto.ErrAuthenticationFailed) {
				log.Err(decErr).Int64("user_id", userID).Msg("unexpected decryption failure during unlock")
				return models.UnlockResponse{}, fmt.Errorf("decryption failed during unlock: %w", decErr)
			}

			u.locks.Lock(userID)
			for _, k := range limiterKeys {
				u.limiter.RecordFailure(k)
			}
			u.locks.Unlock(userID)

			u.logger.Audit(zerolog.WarnLevel).
				Int64("user_id", userID).
				Msg("unlock failed, submitted key did not authenticate")
			return models.UnlockResponse{}, ErrInvalidKey
		}
	}

	u.locks.Lock(userID)
	s := u.sessions.Create(userID, key)
	u.locks.Unlock(userID)

	u.logger.Audit(zerolog.InfoLevel).
		Int64("user_id", userID).
		Time("expires_at", s.ExpiresAt).
		Msg("vault unlocked")

	return models.UnlockResponse{ExpiresAt: s.ExpiresAt}, nil
}

// Lock discards the caller's unlock session. Locking an already-locked vault
// is a successful no-op.
func (u *unlockService) Lock(ctx context.Context, userID int64) error {
	u.locks.Lock(userID)
	u.sessions.Clear(userID)
	u.locks.Unlock(userID)

	u.logger.Audit(zerolog.InfoLevel).
		Int64("user_id", userID).
		Msg("vault locked")

	return nil
}

// limiterKeys returns the budget keys charged by this request: always the
// per-user key, plus the (user, address) key when layered limiting is on and
// middleware recorded a remote address.
func (u *unlockService) limiterKeys(ctx context.Context, userID int64) []string {
	keys := []string{session.UserKey(userID)}
	if u.perAddress {
		if addr, ok := utils.GetRemoteAddrFromContext(ctx); ok && addr != "" {
			keys = append(keys, session.UserAddrKey(userID, addr))
		}
	}
	return keys
}

func (u *unlockService) allowed(keys []string) bool {
	for _, k := range keys {
		if !u.limiter.Allowed(k) {
			return false
		}
	}
	return true
}
