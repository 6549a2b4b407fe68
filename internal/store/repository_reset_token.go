package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/models"
)

// resetTokenRepository is the PostgreSQL-backed implementation of
// [ResetTokenRepository] over the "reset_tokens" table.
type resetTokenRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewResetTokenRepository constructs a [ResetTokenRepository] backed by the
// provided database connection and logger.
func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

// CreateToken persists a freshly issued reset token.
func (r *resetTokenRepository) CreateToken(ctx context.Context, token models.ResetToken) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createResetToken, token.Token, token.UserID, token.ExpiresAt); err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.CreateToken").
			Int64("user_id", token.UserID).
			Msg("failed to insert reset token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindToken loads a reset token by its value.
// Returns [ErrTokenNotFound] when no such token exists.
func (r *resetTokenRepository) FindToken(ctx context.Context, token string) (models.ResetToken, error) {
	log := logger.FromContext(ctx)

	var found models.ResetToken
	err := r.db.QueryRowContext(ctx, findResetToken, token).
		Scan(&found.Token, &found.UserID, &found.ExpiresAt, &found.UsedAt, &found.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResetToken{}, ErrTokenNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.FindToken").
			Msg("failed to query reset token")
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// MarkTokenUsed consumes the token. The UPDATE carries a used_at IS NULL
// guard, so of two concurrent confirmations exactly one succeeds; the loser
// receives [ErrTokenAlreadyUsed].
func (r *resetTokenRepository) MarkTokenUsed(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markResetTokenUsed, token)
	if err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.MarkTokenUsed").
			Msg("failed to mark reset token used")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTokenAlreadyUsed
	}

	return nil
}

// HasActiveToken reports whether userID already holds an unused, unexpired
// token.
func (r *resetTokenRepository) HasActiveToken(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, hasActiveResetToken, userID).Scan(&exists); err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.HasActiveToken").
			Int64("user_id", userID).
			Msg("failed to query active reset token")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// PurgeExpired removes expired tokens and returns the number deleted.
func (r *resetTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, purgeExpiredResetTokens)
	if err != nil {
		log.Err(err).
			Str("func", "*resetTokenRepository.PurgeExpired").
			Msg("failed to purge expired reset tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return purged, nil
}
