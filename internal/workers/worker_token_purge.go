package workers

import (
	"context"
	"time"

	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/store"
)

// tokenPurgeWorker periodically removes expired reset tokens from storage.
// Token validity is enforced at read time regardless; the worker only keeps
// the table from accumulating dead rows.
type tokenPurgeWorker struct {
	tokens   store.ResetTokenRepository
	interval time.Duration
	logger   *logger.Logger
}

func newTokenPurgeWorker(tokens store.ResetTokenRepository, interval time.Duration, logger *logger.Logger) *tokenPurgeWorker {
	return &tokenPurgeWorker{
		tokens:   tokens,
		interval: interval,
		logger:   logger,
	}
}

func (w *tokenPurgeWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			w.purge()
		}
	}()
}

func (w *tokenPurgeWorker) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	purged, err := w.tokens.PurgeExpired(ctx)
	if err != nil {
		w.logger.Err(err).Msg("reset token purge failed")
		return
	}

	if purged > 0 {
		w.logger.Info().Int64("purged", purged).Msg("expired reset tokens purged")
	}
}
