package service

import (
	"context"

	"github.com/avdeevsm/go-vault-core/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account registration, credential verification, and JWT
// token lifecycle. It authenticates accounts only: nothing here touches the
// vault encryption key.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UnlockService implements the per-session key verification protocol. A
// successful unlock is the only way key material enters the process, and
// locking is the way it leaves before natural expiry.
type UnlockService interface {
	// Unlock verifies the submitted key against the vault's ciphertext and,
	// on success, installs an in-memory session binding the user to the key.
	Unlock(ctx context.Context, userID int64, request models.UnlockRequest) (models.UnlockResponse, error)

	// Lock discards the caller's unlock session. Idempotent: locking an
	// already-locked vault succeeds.
	Lock(ctx context.Context, userID int64) error
}

// RotationService re-encrypts a vault under a new master key.
type RotationService interface {
	// Rotate re-encrypts every readable entry under the new key in one
	// transaction, skipping entries the current key cannot open, and rebinds
	// the unlock session to the new key.
	Rotate(ctx context.Context, userID int64, request models.RotateRequest) (models.RotationResult, error)
}

// ResetService implements the destructive lost-key recovery path: a vault
// that cannot be unlocked can only be emptied, never read.
type ResetService interface {
	// RequestReset issues a single-use reset token and delivers it
	// out-of-band. The outcome is indistinguishable for existing and
	// unknown logins.
	RequestReset(ctx context.Context, request models.ResetRequest, requesterAddr string) error

	// ConfirmReset consumes a reset token and permanently deletes every
	// entry in the owner's vault, returning the number destroyed.
	ConfirmReset(ctx context.Context, request models.ResetConfirmRequest) (models.ResetConfirmResponse, error)
}

// EntryService is the encrypted CRUD surface over vault entries. Every
// operation requires an active unlock session; plaintext exists only inside
// a single call frame.
type EntryService interface {
	CreateEntry(ctx context.Context, userID int64, request models.EntryCreateRequest) (models.EntryResponse, error)
	GetEntry(ctx context.Context, userID int64, entryID string) (models.EntryResponse, error)
	ListEntries(ctx context.Context, userID int64, category models.Category) ([]models.EntryResponse, error)
	UpdateEntry(ctx context.Context, userID int64, request models.EntryUpdateRequest) (models.EntryResponse, error)
	DeleteEntry(ctx context.Context, userID int64, entryID string) error
}
