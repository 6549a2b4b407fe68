package store

import (
	"context"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
)

// Storages aggregates all repositories over one shared database connection.
type Storages struct {
	UserRepository       UserRepository
	EntryRepository      EntryRepository
	ResetTokenRepository ResetTokenRepository
}

// NewStorages connects to PostgreSQL, runs migrations, and wires all
// repositories over the shared [*DB].
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		EntryRepository:      NewEntryRepository(db, log),
		ResetTokenRepository: NewResetTokenRepository(db, log),
	}, nil
}
