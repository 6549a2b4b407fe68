package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, a missing HTTP address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or password hash key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidUnlockConfigs indicates invalid unlock protocol settings
	// (for example, a non-positive attempt threshold or window).
	ErrInvalidUnlockConfigs = errors.New("invalid unlock configuration")
)
