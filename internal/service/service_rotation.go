// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avdeevsm/go-vault-core/internal/crypto"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
	"github.com/avdeevsm/go-vault-core/models"
)

// rotationService re-encrypts a vault under a new master key.
//
// Rotation is best-effort per entry: an entry the current key cannot open is
// skipped and left under whichever key last wrote it, rather than failing the
// whole batch. The write itself is all-or-nothing — every successfully
// re-encrypted entry commits in one transaction.
type rotationService struct {
	entryRepository store.EntryRepository
	engine          crypto.CipherEngine
	sessions        *session.Registry
	locks           *session.UserLocks
	logger          *logger.Logger
}

// NewRotationService wires key rotation to the entry store, the cipher engine
// and the shared session registry.
func NewRotationService(
	entryRepository store.EntryRepository,
	engine crypto.CipherEngine,
	sessions *session.Registry,
	locks *session.UserLocks,
	logger *logger.Logger,
) RotationService {
	return &rotationService{
		entryRepository: entryRepository,
		engine:          engine,
		sessions:        sessions,
		locks:           locks,
		logger:          logger,
	}
}

// Rotate re-encrypts the caller's vault under the new key.
//
// Preconditions, checked in order:
//   - an active unlock session must exist (ErrSessionRequired);
//   - both keys must be structurally valid (ErrInvalidKeyFormat);
//   - the submitted current key must byte-equal the session key
//     (ErrKeyMismatch). The comparison is constant-time.
//
// Entries are then read in full, decrypted with the current key and sealed
// under the new key with fresh IVs. Entries that fail to decrypt are skipped
// and reported in the result. If the vault holds at least one entry and none
// rotated, nothing is written and ErrRotationIneffective is returned.
//
// On success the batch commits in one transaction and the unlock session is
// rebound to the new key, so subsequent operations in the same session keep
// working without a fresh unlock.
func (r *rotationService) Rotate(ctx context.Context, userID int64, request models.RotateRequest) (models.RotationResult, error) {
	log := logger.FromContext(ctx)

	sessionKey := r.sessions.EncryptionKey(userID)
	if sessionKey == nil {
		return models.RotationResult{}, ErrSessionRequired
	}

	currentKey, err := decodeKey(request.CurrentKey, r.engine.KeySize())
	if err != nil {
		return models.RotationResult{}, err
	}
	defer zeroBytes(currentKey)

	newKey, err := decodeKey(request.NewKey, r.engine.KeySize())
	if err != nil {
		return models.RotationResult{}, err
	}
	defer zeroBytes(newKey)

	if subtle.ConstantTimeCompare(currentKey, sessionKey) != 1 {
		r.logger.Audit(zerolog.WarnLevel).
			Int64("user_id", userID).
			Msg("rotation rejected, submitted key does not match session key")
		return models.RotationResult{}, ErrKeyMismatch
	}

	entries, err := r.entryRepository.GetAllEntries(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to load entries for rotation")
		return models.RotationResult{}, fmt.Errorf("failed to load entries for rotation: %w", err)
	}

	result := models.RotationResult{
		RotatedIDs: make([]string, 0, len(entries)),
		SkippedIDs: make([]string, 0),
	}
	rotated := make([]models.VaultEntry, 0, len(entries))

	for _, entry := range entries {
		plaintext, decErr := r.engine.Decrypt(entry.Ciphertext, entry.IV, entry.AuthTag, currentKey)
		if decErr != nil {
			if !errors.Is(decErr, crypto.ErrAuthenticationFailed) {
				log.Err(decErr).
					Int64("user_id", userID).
					Str("entry_id", entry.ID).
					Msg("unexpected decryption failure during rotation")
				return models.RotationResult{}, fmt.Errorf("decryption failed during rotation: %w", decErr)
			}

			result.SkippedIDs = append(result.SkippedIDs, entry.ID)
			continue
		}

		ciphertext, iv, authTag, encErr := r.engine.Encrypt(plaintext, newKey)
		zeroBytes(plaintext)
		if encErr != nil {
			log.Err(encErr).
				Int64("user_id", userID).
				Str("entry_id", entry.ID).
				Msg("failed to re-encrypt entry")
			return models.RotationResult{}, fmt.Errorf("failed to re-encrypt entry: %w", encErr)
		}

		entry.Ciphertext = ciphertext
		entry.IV = iv
		entry.AuthTag = authTag
		rotated = append(rotated, entry)
		result.RotatedIDs = append(result.RotatedIDs, entry.ID)
	}

	if len(entries) > 0 && result.Rotated() == 0 {
		r.logger.Audit(zerolog.WarnLevel).
			Int64("user_id", userID).
			Int("entries", len(entries)).
			Msg("rotation rejected, no entry could be re-encrypted")
		return models.RotationResult{}, ErrRotationIneffective
	}

	if err := r.entryRepository.UpdateEntriesBatch(ctx, userID, rotated); err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Int("batch size", len(rotated)).
			Msg("failed to commit rotated entries")
		return models.RotationResult{}, fmt.Errorf("failed to commit rotated entries: %w", err)
	}

	r.locks.Lock(userID)
	r.sessions.Create(userID, newKey)
	r.locks.Unlock(userID)

	r.logger.Audit(zerolog.InfoLevel).
		Int64("user_id", userID).
		Int("rotated", result.Rotated()).
		Int("skipped", result.Skipped()).
		Msg("vault key rotated")

	return result, nil
}
