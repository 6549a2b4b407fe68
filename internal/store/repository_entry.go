// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/models"
)

// entryRepository is the PostgreSQL-backed implementation of
// [EntryRepository]. It executes all vault-entry operations against the
// "vault_entries" table using the embedded [*DB] connection. The table holds
// only ciphertext, iv, auth tag, the clear-text category and timestamps —
// no plaintext, no key, no key-derived value.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, entry id, batch size, etc.).
type entryRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntryRepository constructs an [EntryRepository] backed by the provided
// database connection and logger.
func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	return &entryRepository{
		DB:     db,
		logger: logger,
	}
}

// scanEntry reads one vault_entries row into a [models.VaultEntry].
func scanEntry(row interface{ Scan(...any) error }) (models.VaultEntry, error) {
	var e models.VaultEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Category,
		&e.Ciphertext,
		&e.IV,
		&e.AuthTag,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetAllEntries retrieves every vault entry owned by the given user.
// Returns an empty slice when the vault is empty.
func (p *entryRepository) GetAllEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.QueryContext(ctx, getAllUserEntries, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*entryRepository.GetAllEntries").
			Int64("user_id", userID).
			Msg("failed to execute query for getting all user entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0, 50)

	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*entryRepository.GetAllEntries").
				Int64("user_id", userID).
				Msg("failed to scan vault entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*entryRepository.GetAllEntries").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// GetEntry retrieves a single entry by id, scoped to the owning user.
// Returns [ErrEntryNotFound] when no matching row exists.
func (p *entryRepository) GetEntry(ctx context.Context, userID int64, entryID string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	entry, err := scanEntry(p.DB.QueryRowContext(ctx, getEntryByID, userID, entryID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.GetEntry").
			Int64("user_id", userID).
			Str("entry_id", entryID).
			Msg("failed to query vault entry")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// GetAnyEntry retrieves one arbitrary entry from the user's vault, used by
// the unlock protocol to verify a submitted key without loading the whole
// vault. Returns [ErrEntryNotFound] when the vault is empty.
func (p *entryRepository) GetAnyEntry(ctx context.Context, userID int64) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	entry, err := scanEntry(p.DB.QueryRowContext(ctx, getAnyUserEntry, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.GetAnyEntry").
			Int64("user_id", userID).
			Msg("failed to query vault entry")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// ListEntries retrieves the user's entries, optionally filtered by category.
// The query is built dynamically because category is the only optional
// predicate; everything else is fixed.
func (p *entryRepository) ListEntries(ctx context.Context, userID int64, category models.Category) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery(userID, category)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.ListEntries").
			Int64("user_id", userID).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.ListEntries").
			Int64("user_id", userID).
			Str("category", string(category)).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0, 50)

	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*entryRepository.ListEntries").
				Int64("user_id", userID).
				Msg("failed to scan vault entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*entryRepository.ListEntries").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// SaveEntry inserts a new entry and returns the canonical database
// representation with server-assigned timestamps.
func (p *entryRepository) SaveEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	saved, err := scanEntry(p.DB.QueryRowContext(ctx, saveEntry,
		entry.ID,
		entry.UserID,
		entry.Category,
		entry.Ciphertext,
		entry.IV,
		entry.AuthTag,
	))
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.SaveEntry").
			Int64("user_id", entry.UserID).
			Str("entry_id", entry.ID).
			Msg("failed to insert vault entry")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return saved, nil
}

// UpdateEntry replaces an entry's category and its full ciphertext/iv/tag
// triple. Returns [ErrEntryNotFound] when the target row does not exist for
// the given owner.
func (p *entryRepository) UpdateEntry(ctx context.Context, entry models.VaultEntry) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, updateEntry,
		entry.UserID,
		entry.ID,
		entry.Category,
		entry.Ciphertext,
		entry.IV,
		entry.AuthTag,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.UpdateEntry").
			Int64("user_id", entry.UserID).
			Str("entry_id", entry.ID).
			Msg("failed to update vault entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// batchRetryAttempts bounds how many times a failed batch transaction is
// re-run when the error classifier deems the failure transient.
const batchRetryAttempts = 3

// UpdateEntriesBatch replaces the ciphertext of every given entry inside one
// transaction. Either the whole batch commits or none of it does; each
// entry's triple stays internally consistent either way, which is what makes
// an interrupted key rotation recoverable by simply re-running it.
//
// A rotation batch touches every row of a vault at once, so it is the query
// most likely to lose a serialization conflict or deadlock. Those failures
// are classified via [ErrorClassificator] and the whole transaction is
// re-attempted; anything non-retryable surfaces immediately.
func (p *entryRepository) UpdateEntriesBatch(ctx context.Context, userID int64, entries []models.VaultEntry) error {
	log := logger.FromContext(ctx)

	if len(entries) == 0 {
		return nil
	}

	var err error
	for attempt := 1; attempt <= batchRetryAttempts; attempt++ {
		err = p.updateEntriesTx(ctx, userID, entries)
		if err == nil || p.DB.errorClassificator.Classify(err) == NonRetryable {
			return err
		}

		log.Warn().
			Str("func", "*entryRepository.UpdateEntriesBatch").
			Int64("user_id", userID).
			Int("attempt", attempt).
			Err(err).
			Msg("transient failure in batch update, retrying")
	}

	return err
}

// updateEntriesTx runs one attempt of the batch replacement in a single
// transaction.
func (p *entryRepository) updateEntriesTx(ctx context.Context, userID int64, entries []models.VaultEntry) error {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.UpdateEntriesBatch").
			Int64("user_id", userID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for i, entry := range entries {
		result, execErr := tx.ExecContext(ctx, updateEntryCiphertext,
			userID,
			entry.ID,
			entry.Ciphertext,
			entry.IV,
			entry.AuthTag,
		)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "*entryRepository.UpdateEntriesBatch").
				Int64("user_id", userID).
				Str("entry_id", entry.ID).
				Int("iteration", i).
				Msg("failed to update entry in batch")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, affErr := result.RowsAffected()
		if affErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, affErr)
		}
		if affected == 0 {
			return fmt.Errorf("%w: id %s", ErrEntryNotFound, entry.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "*entryRepository.UpdateEntriesBatch").
			Int64("user_id", userID).
			Int("batch size", len(entries)).
			Msg("failed to commit batch update")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// DeleteEntry removes a single entry scoped to the owning user.
// Returns [ErrEntryNotFound] when nothing was deleted.
func (p *entryRepository) DeleteEntry(ctx context.Context, userID int64, entryID string) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteEntry, userID, entryID)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.DeleteEntry").
			Int64("user_id", userID).
			Str("entry_id", entryID).
			Msg("failed to delete vault entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// DeleteAllEntries destroys every entry owned by userID and returns the
// number of rows removed. The count is reported rather than assumed so that
// the reset protocol can surface the actual blast radius.
func (p *entryRepository) DeleteAllEntries(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteAllUserEntries, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.DeleteAllEntries").
			Int64("user_id", userID).
			Msg("failed to delete all user entries")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}
