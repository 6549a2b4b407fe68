// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avdeevsm/go-vault-core/internal/crypto"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
	"github.com/avdeevsm/go-vault-core/models"
)

// entryService is the encrypted CRUD surface over vault entries.
//
// Every operation requires an active unlock session: the session key is the
// only key material available, and it exists only in process memory. A
// payload is serialized to JSON, sealed by the cipher engine, and stored as
// a ciphertext/iv/tag triple; plaintext never outlives the call frame.
type entryService struct {
	entryRepository store.EntryRepository
	engine          crypto.CipherEngine
	sessions        *session.Registry
	uuid            uuidGenerator
	logger          *logger.Logger
}

// NewEntryService constructs the vault-entry service.
func NewEntryService(
	entryRepository store.EntryRepository,
	engine crypto.CipherEngine,
	sessions *session.Registry,
	uuid uuidGenerator,
	logger *logger.Logger,
) EntryService {
	return &entryService{
		entryRepository: entryRepository,
		engine:          engine,
		sessions:        sessions,
		uuid:            uuid,
		logger:          logger,
	}
}

// CreateEntry seals a new payload under the caller's session key and stores it.
func (s *entryService) CreateEntry(ctx context.Context, userID int64, request models.EntryCreateRequest) (models.EntryResponse, error) {
	log := logger.FromContext(ctx)

	if !request.Category.Valid() {
		return models.EntryResponse{}, ErrInvalidDataProvided
	}
	if request.Payload.Title == "" {
		return models.EntryResponse{}, ErrEntryPayloadInvalid
	}

	key := s.sessions.EncryptionKey(userID)
	if key == nil {
		return models.EntryResponse{}, ErrSessionRequired
	}

	ciphertext, iv, authTag, err := s.sealPayload(request.Payload, key)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to seal entry payload")
		return models.EntryResponse{}, err
	}

	entry := models.VaultEntry{
		ID:         s.uuid.Generate(),
		UserID:     userID,
		Category:   request.Category,
		Ciphertext: ciphertext,
		IV:         iv,
		AuthTag:    authTag,
	}

	saved, err := s.entryRepository.SaveEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to save vault entry")
		return models.EntryResponse{}, fmt.Errorf("failed to save vault entry: %w", err)
	}

	return models.EntryResponse{
		ID:        saved.ID,
		Category:  saved.Category,
		Payload:   request.Payload,
		CreatedAt: saved.CreatedAt,
		UpdatedAt: saved.UpdatedAt,
	}, nil
}

// GetEntry fetches one entry and opens it with the session key.
func (s *entryService) GetEntry(ctx context.Context, userID int64, entryID string) (models.EntryResponse, error) {
	log := logger.FromContext(ctx)

	key := s.sessions.EncryptionKey(userID)
	if key == nil {
		return models.EntryResponse{}, ErrSessionRequired
	}

	entry, err := s.entryRepository.GetEntry(ctx, userID, entryID)
	if err != nil {
		return models.EntryResponse{}, fmt.Errorf("failed to fetch vault entry: %w", err)
	}

	response, err := s.openEntry(entry, key)
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("entry_id", entryID).
			Msg("failed to open vault entry")
		return models.EntryResponse{}, err
	}

	return response, nil
}

// ListEntries fetches the user's entries, optionally narrowed to one
// category, and opens each with the session key. Entries the session key
// cannot open (left behind by a partial rotation) are omitted from the
// result rather than failing the whole listing; a rotation with the key that
// wrote them is the way to bring them back.
func (s *entryService) ListEntries(ctx context.Context, userID int64, category models.Category) ([]models.EntryResponse, error) {
	log := logger.FromContext(ctx)

	if category != "" && !category.Valid() {
		return nil, ErrInvalidDataProvided
	}

	key := s.sessions.EncryptionKey(userID)
	if key == nil {
		return nil, ErrSessionRequired
	}

	entries, err := s.entryRepository.ListEntries(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault entries: %w", err)
	}

	responses := make([]models.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		response, openErr := s.openEntry(entry, key)
		if openErr != nil {
			if errors.Is(openErr, ErrInvalidKey) {
				log.Warn().
					Int64("user_id", userID).
					Str("entry_id", entry.ID).
					Msg("entry unreadable under session key, omitted from listing")
				continue
			}
			return nil, openErr
		}

		responses = append(responses, response)
	}

	return responses, nil
}

// UpdateEntry replaces an entry's payload and category in full. A fresh IV is
// drawn for the new ciphertext; nothing of the previous triple survives.
func (s *entryService) UpdateEntry(ctx context.Context, userID int64, request models.EntryUpdateRequest) (models.EntryResponse, error) {
	log := logger.FromContext(ctx)

	if request.ID == "" || !request.Category.Valid() {
		return models.EntryResponse{}, ErrInvalidDataProvided
	}
	if request.Payload.Title == "" {
		return models.EntryResponse{}, ErrEntryPayloadInvalid
	}

	key := s.sessions.EncryptionKey(userID)
	if key == nil {
		return models.EntryResponse{}, ErrSessionRequired
	}

	ciphertext, iv, authTag, err := s.sealPayload(request.Payload, key)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to seal entry payload")
		return models.EntryResponse{}, err
	}

	entry := models.VaultEntry{
		ID:         request.ID,
		UserID:     userID,
		Category:   request.Category,
		Ciphertext: ciphertext,
		IV:         iv,
		AuthTag:    authTag,
	}

	if err := s.entryRepository.UpdateEntry(ctx, entry); err != nil {
		return models.EntryResponse{}, fmt.Errorf("failed to update vault entry: %w", err)
	}

	updated, err := s.entryRepository.GetEntry(ctx, userID, request.ID)
	if err != nil {
		return models.EntryResponse{}, fmt.Errorf("failed to fetch updated vault entry: %w", err)
	}

	return models.EntryResponse{
		ID:        updated.ID,
		Category:  updated.Category,
		Payload:   request.Payload,
		CreatedAt: updated.CreatedAt,
		UpdatedAt: updated.UpdatedAt,
	}, nil
}

// DeleteEntry removes one entry. An unlock session is required even though no
// cryptography happens: destructive operations follow the same gate as reads.
func (s *entryService) DeleteEntry(ctx context.Context, userID int64, entryID string) error {
	if entryID == "" {
		return ErrInvalidDataProvided
	}

	if s.sessions.EncryptionKey(userID) == nil {
		return ErrSessionRequired
	}

	if err := s.entryRepository.DeleteEntry(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete vault entry: %w", err)
	}

	return nil
}

// sealPayload serializes and encrypts a payload under key.
func (s *entryService) sealPayload(payload models.EntryPayload, key []byte) (ciphertext, iv, authTag []byte, err error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrEntryPayloadInvalid, err)
	}
	defer zeroBytes(plaintext)

	ciphertext, iv, authTag, err = s.engine.Encrypt(plaintext, key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encrypt entry payload: %w", err)
	}

	return ciphertext, iv, authTag, nil
}

// openEntry decrypts a stored entry and deserializes its payload. A tag
// mismatch maps to ErrInvalidKey: the stored triple was written under a key
// other than the session's.
func (s *entryService) openEntry(entry models.VaultEntry, key []byte) (models.EntryResponse, error) {
	plaintext, err := s.engine.Decrypt(entry.Ciphertext, entry.IV, entry.AuthTag, key)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthenticationFailed) {
			return models.EntryResponse{}, ErrInvalidKey
		}
		return models.EntryResponse{}, fmt.Errorf("failed to decrypt vault entry: %w", err)
	}
	defer zeroBytes(plaintext)

	var payload models.EntryPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return models.EntryResponse{}, fmt.Errorf("failed to decode entry payload: %w", err)
	}

	return models.EntryResponse{
		ID:        entry.ID,
		Category:  entry.Category,
		Payload:   payload,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}
