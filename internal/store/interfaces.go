package store

import (
	"context"

	"github.com/avdeevsm/go-vault-core/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// EntryRepository is the persistence contract for encrypted vault entries.
// Every method is scoped by owner; no cross-owner query path exists. Writes
// always replace the ciphertext/iv/tag triple in full — there is no partial
// patch of an entry's encrypted content.
type EntryRepository interface {
	GetAllEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error)
	GetEntry(ctx context.Context, userID int64, entryID string) (models.VaultEntry, error)

	// GetAnyEntry returns one arbitrary entry from the user's vault, or
	// ErrEntryNotFound when the vault is empty. Used for key verification.
	GetAnyEntry(ctx context.Context, userID int64) (models.VaultEntry, error)
	ListEntries(ctx context.Context, userID int64, category models.Category) ([]models.VaultEntry, error)

	SaveEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	UpdateEntry(ctx context.Context, entry models.VaultEntry) error

	// UpdateEntriesBatch replaces the ciphertext of every given entry inside
	// one transaction. Used by key rotation so that a crash leaves each entry
	// either fully under the old key or fully under the new one.
	UpdateEntriesBatch(ctx context.Context, userID int64, entries []models.VaultEntry) error

	DeleteEntry(ctx context.Context, userID int64, entryID string) error

	// DeleteAllEntries destroys every entry owned by userID and returns the
	// number of rows removed.
	DeleteAllEntries(ctx context.Context, userID int64) (int64, error)
}

// ResetTokenRepository is the persistence contract for single-use vault-reset
// tokens.
type ResetTokenRepository interface {
	CreateToken(ctx context.Context, token models.ResetToken) error
	FindToken(ctx context.Context, token string) (models.ResetToken, error)

	// MarkTokenUsed consumes the token. It succeeds only for a token that is
	// still unused, so concurrent confirmations cannot both win.
	MarkTokenUsed(ctx context.Context, token string) error

	// HasActiveToken reports whether userID already holds an unused,
	// unexpired token. Used to keep reset-request issuance idempotent.
	HasActiveToken(ctx context.Context, userID int64) (bool, error)

	// PurgeExpired removes expired tokens and returns the number deleted.
	PurgeExpired(ctx context.Context) (int64, error)
}
