package models

// UnlockRequest carries the vault encryption key submitted once per session.
// The key is base64-encoded raw key material of exactly the configured
// cipher's key size; it is held only in the in-memory session registry after
// a successful unlock and is never persisted or logged.
type UnlockRequest struct {
	Key string `json:"key"`
}

// RotateRequest carries both keys for a master-key rotation. CurrentKey must
// match the key bound in the caller's active unlock session exactly.
type RotateRequest struct {
	CurrentKey string `json:"current_key"`
	NewKey     string `json:"new_key"`
}

// ResetRequest asks for a single-use vault-reset token to be delivered to the
// account's email address. The response never reveals whether the login exists.
type ResetRequest struct {
	Login string `json:"login"`
}

// ResetConfirmRequest consumes a reset token. Confirm must be explicitly true:
// the operation irreversibly destroys every entry in the vault.
type ResetConfirmRequest struct {
	Token   string `json:"token"`
	Confirm bool   `json:"confirm"`
}

// EntryCreateRequest is the boundary form of a new vault entry: a plaintext
// payload plus its clear-text category. The payload is serialized and
// encrypted with the session key before anything reaches storage.
type EntryCreateRequest struct {
	Category Category     `json:"category"`
	Payload  EntryPayload `json:"payload"`
}

// EntryUpdateRequest replaces an entry's content in full. Partial patches are
// not supported: every update produces a complete new ciphertext/iv/tag triple.
type EntryUpdateRequest struct {
	ID       string       `json:"id"`
	Category Category     `json:"category"`
	Payload  EntryPayload `json:"payload"`
}
