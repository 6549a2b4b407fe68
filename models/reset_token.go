package models

import "time"

// ResetToken authorizes the destructive lost-key vault reset path. It is
// delivered out-of-band (email) and is strictly single-use: once UsedAt is
// set the token can never authorize another reset.
type ResetToken struct {
	// Token is the opaque single-use token value (a UUID).
	Token string `json:"token"`

	// UserID is the account the token was issued for.
	UserID int64 `json:"-"`

	// ExpiresAt bounds the token's validity window.
	ExpiresAt time.Time `json:"expires_at"`

	// UsedAt is nil until the token is consumed. A non-nil value permanently
	// invalidates the token.
	UsedAt *time.Time `json:"-"`

	// CreatedAt is the issuance timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Usable reports whether the token can still authorize a reset at time now:
// it must be unused and unexpired.
func (t ResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the ResetToken model.
func (t ResetToken) TableName() string {
	return "reset_tokens"
}
