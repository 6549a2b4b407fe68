package workers

import (
	"time"

	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/session"
)

// limiterSweepWorker periodically drops attempt-limiter windows whose every
// recorded failure has aged out, so the limiter's memory stays proportional
// to recent activity rather than to the total number of users ever seen.
type limiterSweepWorker struct {
	limiter  *session.AttemptLimiter
	interval time.Duration
	logger   *logger.Logger
}

func newLimiterSweepWorker(limiter *session.AttemptLimiter, interval time.Duration, logger *logger.Logger) *limiterSweepWorker {
	return &limiterSweepWorker{
		limiter:  limiter,
		interval: interval,
		logger:   logger,
	}
}

func (w *limiterSweepWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			if swept := w.limiter.SweepExpired(); swept > 0 {
				w.logger.Debug().Int("swept", swept).Msg("expired limiter windows swept")
			}
		}
	}()
}
