package models

import "time"

// User represents an account entity used for authentication and ownership of
// vault entries. It deliberately carries no vault-key material: the vault
// encryption key is derived client-side and the server stores neither the key
// nor any value from which it could be reconstructed.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier, typically an email address.
	Login string `json:"login"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// AuthHash is the HMAC-SHA256 of the user's account password under the
	// server's configured hash key. It authenticates the account only and is
	// cryptographically unrelated to the vault encryption key.
	AuthHash string `json:"auth_hash,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
