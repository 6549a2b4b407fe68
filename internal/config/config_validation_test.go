package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashKey: "hash-key",
			TokenSignKey:    "sign-key",
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/vault"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
		Unlock: Unlock{
			SessionTTL:    15 * time.Minute,
			MaxAttempts:   5,
			AttemptWindow: 15 * time.Minute,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().validate())
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DB.DSN = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_MissingAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}

func TestValidate_MissingKeys(t *testing.T) {
	cfg := validConfig()
	cfg.App.TokenSignKey = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}

func TestValidate_BadUnlockSettings(t *testing.T) {
	cfg := validConfig()
	cfg.Unlock.MaxAttempts = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidUnlockConfigs)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	assert.Equal(t, defaultSessionTTL, cfg.Unlock.SessionTTL)
	assert.Equal(t, defaultMaxAttempts, cfg.Unlock.MaxAttempts)
	assert.Equal(t, defaultAttemptWindow, cfg.Unlock.AttemptWindow)
	assert.Equal(t, defaultTokenTTL, cfg.Reset.TokenTTL)
	assert.Equal(t, defaultCipherSuite, cfg.App.CipherSuite)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.Unlock.MaxAttempts = 10
	cfg.applyDefaults()

	assert.Equal(t, 10, cfg.Unlock.MaxAttempts)
}

func TestParseEnv_Unlock(t *testing.T) {
	t.Setenv("UNLOCK_MAX_ATTEMPTS", "7")
	t.Setenv("UNLOCK_ATTEMPT_WINDOW", "20m")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/vault")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, 7, cfg.Unlock.MaxAttempts)
	assert.Equal(t, 20*time.Minute, cfg.Unlock.AttemptWindow)
	assert.Equal(t, "postgres://env/vault", cfg.Storage.DB.DSN)
}

func TestNetAddress_SetAndString(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:9090"))
	assert.Equal(t, "localhost:9090", addr.String())

	assert.Error(t, addr.Set("no-port"))
	assert.Error(t, addr.Set("localhost:0"))
	assert.Error(t, addr.Set("bad-host:80"))
}
