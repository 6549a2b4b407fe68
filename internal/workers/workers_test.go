// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package workers

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/mock"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

func TestNewWorkers_ZeroIntervalsCreateNothing(t *testing.T) {
	ws := NewWorkers(&store.Storages{}, session.NewAttemptLimiter(3, time.Minute), config.Workers{}, logger.Nop())

	if len(ws.workers) != 0 {
		t.Errorf("expected no workers for zero intervals, got %d", len(ws.workers))
	}
}

func TestNewWorkers_CreatesBothWorkers(t *testing.T) {
	cfg := config.Workers{
		TokenPurgeInterval:   time.Hour,
		LimiterSweepInterval: time.Minute,
	}

	ws := NewWorkers(&store.Storages{}, session.NewAttemptLimiter(3, time.Minute), cfg, logger.Nop())

	if len(ws.workers) != 2 {
		t.Errorf("expected 2 workers, got %d", len(ws.workers))
	}
}

func TestTokenPurgeWorker_Purge(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockResetTokenRepository(ctrl)

	tokens.EXPECT().PurgeExpired(gomock.Any()).Return(int64(4), nil)

	w := newTokenPurgeWorker(tokens, time.Hour, logger.Nop())
	w.purge()
}

func TestTokenPurgeWorker_PurgeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockResetTokenRepository(ctrl)

	tokens.EXPECT().PurgeExpired(gomock.Any()).Return(int64(0), errors.New("db unavailable"))

	w := newTokenPurgeWorker(tokens, time.Hour, logger.Nop())

	// an errored purge must not panic; the next tick simply retries
	w.purge()
}
