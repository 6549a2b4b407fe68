// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package models

import "time"

// Category is a small clear-text tag attached to every vault entry.
// It is the only non-encrypted attribute of an entry's content and exists
// purely so that lists can be filtered without decrypting anything.
type Category string

const (
	CategoryLogin    Category = "login"
	CategoryNote     Category = "note"
	CategoryBankCard Category = "bank_card"
	CategoryIdentity Category = "identity"
	CategoryOther    Category = "other"
)

// Valid reports whether c is one of the known category tags.
func (c Category) Valid() bool {
	switch c {
	case CategoryLogin, CategoryNote, CategoryBankCard, CategoryIdentity, CategoryOther:
		return true
	}
	return false
}

// VaultEntry is a single encrypted record in a user's vault as it is stored
// and transported by the server. The server never sees the plaintext: only
// Ciphertext/IV/AuthTag (the authenticated-encryption output of a serialized
// [EntryPayload]) plus non-sensitive bookkeeping fields.
//
// Invariant: Ciphertext, IV and AuthTag are always replaced together, never
// individually, so the triple is decryptable under exactly one key — the key
// that was active at last write.
type VaultEntry struct {
	// ID is the entry identifier, assigned at creation and immutable.
	ID string `json:"id"`

	// UserID is the owning account. Immutable; every storage operation is
	// scoped by this field and no cross-owner query path exists.
	UserID int64 `json:"-"`

	// Category is stored in the clear and used only for list filtering.
	Category Category `json:"category"`

	// Ciphertext is the encrypted, serialized entry payload.
	Ciphertext []byte `json:"ciphertext"`

	// IV is the unique nonce used for this ciphertext. Generated fresh on
	// every write; never reused under the same key.
	IV []byte `json:"iv"`

	// AuthTag is the AEAD integrity tag covering Ciphertext.
	AuthTag []byte `json:"auth_tag"`

	// CreatedAt is set once at first write.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every ciphertext replacement.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultEntry model.
func (e VaultEntry) TableName() string {
	return "vault_entries"
}

// EntryPayload is the plaintext structure of a vault entry before encryption.
// It exists only in memory on the unlock-session side of the cipher boundary;
// no field of it is ever persisted or logged.
type EntryPayload struct {
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
