package config

import "time"

// Defaults applied after merging all sources. They keep the unlock and reset
// protocols safe even when the operator configures nothing explicitly.
const (
	defaultSessionTTL    = 15 * time.Minute
	defaultMaxAttempts   = 5
	defaultAttemptWindow = 15 * time.Minute
	defaultTokenTTL      = time.Hour
	defaultMaxRequests   = 3
	defaultRequestWindow = time.Hour
	defaultPurgeInterval = time.Hour
	defaultSweepInterval = 10 * time.Minute
	defaultCipherSuite   = "aes-256-gcm"
)

// applyDefaults fills zero-valued protocol parameters with safe defaults.
// Connection settings (DSN, addresses, keys) have no defaults on purpose:
// they must be configured explicitly and are checked by validate.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Unlock.SessionTTL == 0 {
		cfg.Unlock.SessionTTL = defaultSessionTTL
	}
	if cfg.Unlock.MaxAttempts == 0 {
		cfg.Unlock.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Unlock.AttemptWindow == 0 {
		cfg.Unlock.AttemptWindow = defaultAttemptWindow
	}
	if cfg.Reset.TokenTTL == 0 {
		cfg.Reset.TokenTTL = defaultTokenTTL
	}
	if cfg.Reset.MaxRequests == 0 {
		cfg.Reset.MaxRequests = defaultMaxRequests
	}
	if cfg.Reset.RequestWindow == 0 {
		cfg.Reset.RequestWindow = defaultRequestWindow
	}
	if cfg.Workers.TokenPurgeInterval == 0 {
		cfg.Workers.TokenPurgeInterval = defaultPurgeInterval
	}
	if cfg.Workers.LimiterSweepInterval == 0 {
		cfg.Workers.LimiterSweepInterval = defaultSweepInterval
	}
	if cfg.App.CipherSuite == "" {
		cfg.App.CipherSuite = defaultCipherSuite
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Unlock.MaxAttempts < 1 || cfg.Unlock.AttemptWindow <= 0 || cfg.Unlock.SessionTTL <= 0 {
		return ErrInvalidUnlockConfigs
	}

	return nil
}
