package workers

import (
	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background maintenance workers: periodic purging
// of expired reset tokens and sweeping of stale attempt-limiter windows.
// Workers whose interval is zero or negative are not created.
func NewWorkers(storages *store.Storages, limiter *session.AttemptLimiter, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := new(Workers)

	if cfg.TokenPurgeInterval > 0 {
		ws.workers = append(ws.workers, newTokenPurgeWorker(storages.ResetTokenRepository, cfg.TokenPurgeInterval, logger))
	}
	if cfg.LimiterSweepInterval > 0 {
		ws.workers = append(ws.workers, newLimiterSweepWorker(limiter, cfg.LimiterSweepInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
