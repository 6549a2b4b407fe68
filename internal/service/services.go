package service

import (
	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/crypto"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/mailer"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
	"github.com/avdeevsm/go-vault-core/internal/utils"
)

// Services aggregates every application service behind one wiring point.
type Services struct {
	AuthService     AuthService
	UnlockService   UnlockService
	RotationService RotationService
	ResetService    ResetService
	EntryService    EntryService
}

// NewServices constructs the full service graph. The session registry and
// attempt limiter come in from the caller, which also hands them to the
// background workers; the per-user locks and the uuid generator are built
// here. All of them are shared across the unlock, rotation and reset
// services so those observe the same state.
func NewServices(
	storages store.Storages,
	engine crypto.CipherEngine,
	sessions *session.Registry,
	limiter *session.AttemptLimiter,
	mail mailer.Mailer,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	locks := session.NewUserLocks()
	uuid := utils.NewUUIDGenerator()

	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.App, logger),
		UnlockService: NewUnlockService(
			storages.UserRepository, storages.EntryRepository, engine, sessions, limiter, locks, cfg.Unlock, logger),
		RotationService: NewRotationService(
			storages.EntryRepository, engine, sessions, locks, logger),
		ResetService: NewResetService(
			storages, mail, sessions, locks, uuid, cfg.Reset, logger),
		EntryService: NewEntryService(
			storages.EntryRepository, engine, sessions, uuid, logger),
	}
}
