package models

import "time"

// UnlockResponse reports a successful unlock together with the moment the
// in-memory session will expire.
type UnlockResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// RotationResponse is the boundary form of a [RotationResult].
type RotationResponse struct {
	Rotated    int      `json:"rotated"`
	Skipped    int      `json:"skipped"`
	SkippedIDs []string `json:"skipped_ids,omitempty"`
}

// ResetConfirmResponse reports the blast radius of a completed vault reset:
// the number of entries irreversibly destroyed.
type ResetConfirmResponse struct {
	EntriesDeleted int64 `json:"entries_deleted"`
}

// EntryResponse is a decrypted vault entry as returned to the client after a
// read under an active unlock session.
type EntryResponse struct {
	ID        string       `json:"id"`
	Category  Category     `json:"category"`
	Payload   EntryPayload `json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
