// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/mailer"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
	"github.com/avdeevsm/go-vault-core/models"
)

// uuidGenerator abstracts token value generation so tests can pin the value.
type uuidGenerator interface {
	Generate() string
}

// resetService implements the destructive lost-key recovery path.
//
// A vault whose key is lost cannot be read by anyone, the server included.
// The only recovery is to empty it: a single-use token is delivered
// out-of-band, and confirming it deletes every entry. The account and its
// (now empty) vault survive; the data does not.
type resetService struct {
	userRepository  store.UserRepository
	entryRepository store.EntryRepository
	tokenRepository store.ResetTokenRepository
	mail            mailer.Mailer
	sessions        *session.Registry
	locks           *session.UserLocks

	// requestLimiter budgets reset requests per requester address so the
	// mail channel cannot be used as a flooding vector.
	requestLimiter *session.AttemptLimiter

	uuid     uuidGenerator
	tokenTTL time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewResetService wires the reset protocol to its collaborators. The request
// limiter is dedicated to reset traffic and independent of the unlock
// attempt limiter.
func NewResetService(
	storages store.Storages,
	mail mailer.Mailer,
	sessions *session.Registry,
	locks *session.UserLocks,
	uuid uuidGenerator,
	cfg config.Reset,
	logger *logger.Logger,
) ResetService {
	return &resetService{
		userRepository:  storages.UserRepository,
		entryRepository: storages.EntryRepository,
		tokenRepository: storages.ResetTokenRepository,
		mail:            mail,
		sessions:        sessions,
		locks:           locks,
		requestLimiter:  session.NewAttemptLimiter(cfg.MaxRequests, cfg.RequestWindow),
		uuid:            uuid,
		tokenTTL:        cfg.TokenTTL,
		now:             time.Now,
		logger:          logger,
	}
}

// RequestReset issues a single-use reset token for the account named by
// login and delivers it by mail.
//
// The response is deliberately uniform: an unknown login, an account that
// already holds an active token, and a freshly issued token all produce the
// same nil result, so the endpoint cannot be used to enumerate accounts.
// Only the per-address request budget (ErrTooManyResetRequests) and internal
// failures are surfaced.
func (r *resetService) RequestReset(ctx context.Context, request models.ResetRequest, requesterAddr string) error {
	log := logger.FromContext(ctx)

	if request.Login == "" {
		return ErrInvalidDataProvided
	}

	if requesterAddr != "" {
		if !r.requestLimiter.Allowed(requesterAddr) {
			r.logger.Audit(zerolog.WarnLevel).
				Str("requester", requesterAddr).
				Msg("reset request rejected, request budget exhausted")
			return ErrTooManyResetRequests
		}
		// every request, successful or not, draws on the budget
		r.requestLimiter.RecordFailure(requesterAddr)
	}

	user, err := r.userRepository.FindUserByLogin(ctx, request.Login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		r.logger.Audit(zerolog.InfoLevel).
			Str("requester", requesterAddr).
			Msg("reset requested for unknown login")
		return nil
	}
	if err != nil {
		log.Err(err).Msg("user lookup failed during reset request")
		return fmt.Errorf("user lookup failed during reset request: %w", err)
	}

	active, err := r.tokenRepository.HasActiveToken(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("active token lookup failed")
		return fmt.Errorf("active token lookup failed: %w", err)
	}
	if active {
		// issuing a second active token would only widen the attack surface
		r.logger.Audit(zerolog.InfoLevel).
			Int64("user_id", user.UserID).
			Msg("reset requested while an active token exists")
		return nil
	}

	token := models.ResetToken{
		Token:     r.uuid.Generate(),
		UserID:    user.UserID,
		ExpiresAt: r.now().Add(r.tokenTTL),
	}

	if err := r.tokenRepository.CreateToken(ctx, token); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to persist reset token")
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	expiresAt := token.ExpiresAt.UTC().Format(time.RFC3339)
	if err := r.mail.SendResetToken(ctx, user.Login, token.Token, expiresAt); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to deliver reset token")
		return fmt.Errorf("failed to deliver reset token: %w", err)
	}

	r.logger.Audit(zerolog.InfoLevel).
		Int64("user_id", user.UserID).
		Time("expires_at", token.ExpiresAt).
		Msg("reset token issued")

	return nil
}

// ConfirmReset consumes a reset token and permanently deletes every entry in
// the owner's vault.
//
// The confirm flag must be explicitly true; the operation is irreversible
// and a missing flag fails with ErrResetNotConfirmed before the token is
// even looked up. Unknown, expired and already-used tokens all fail with the
// same ErrInvalidResetToken so the endpoint leaks nothing about token state.
//
// Consumption is atomic at the storage layer: of two concurrent
// confirmations with the same token, exactly one proceeds to deletion.
// Any live unlock session for the owner is cleared as part of the reset.
func (r *resetService) ConfirmReset(ctx context.Context, request models.ResetConfirmRequest) (models.ResetConfirmResponse, error) {
	log := logger.FromContext(ctx)

	if !request.Confirm {
		return models.ResetConfirmResponse{}, ErrResetNotConfirmed
	}
	if request.Token == "" {
		return models.ResetConfirmResponse{}, ErrInvalidResetToken
	}

	token, err := r.tokenRepository.FindToken(ctx, request.Token)
	if errors.Is(err, store.ErrTokenNotFound) {
		r.logger.Audit(zerolog.WarnLevel).Msg("reset confirmation with unknown token")
		return models.ResetConfirmResponse{}, ErrInvalidResetToken
	}
	if err != nil {
		log.Err(err).Msg("reset token lookup failed")
		return models.ResetConfirmResponse{}, fmt.Errorf("reset token lookup failed: %w", err)
	}

	if !token.Usable(r.now()) {
		r.logger.Audit(zerolog.WarnLevel).
			Int64("user_id", token.UserID).
			Msg("reset confirmation with expired or consumed token")
		return models.ResetConfirmResponse{}, ErrInvalidResetToken
	}

	if err := r.tokenRepository.MarkTokenUsed(ctx, request.Token); err != nil {
		if errors.Is(err, store.ErrTokenAlreadyUsed) {
			return models.ResetConfirmResponse{}, ErrInvalidResetToken
		}
		log.Err(err).Int64("user_id", token.UserID).Msg("failed to consume reset token")
		return models.ResetConfirmResponse{}, fmt.Errorf("failed to consume reset token: %w", err)
	}

	deleted, err := r.entryRepository.DeleteAllEntries(ctx, token.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", token.UserID).Msg("failed to delete vault entries")
		return models.ResetConfirmResponse{}, fmt.Errorf("failed to delete vault entries: %w", err)
	}

	r.locks.Lock(token.UserID)
	r.sessions.Clear(token.UserID)
	r.locks.Unlock(token.UserID)

	r.logger.Audit(zerolog.ErrorLevel).
		Int64("user_id", token.UserID).
		Int64("entries_deleted", deleted).
		Msg("vault reset completed, all entries destroyed")

	return models.ResetConfirmResponse{EntriesDeleted: deleted}, nil
}
