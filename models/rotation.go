package models

// RotationResult reports the outcome of a master-key rotation as an explicit
// per-entry accounting rather than a boolean, so callers can distinguish
// "fully rotated", "partially rotated" and "no-op".
type RotationResult struct {
	// RotatedIDs lists the entries successfully re-encrypted under the new key.
	RotatedIDs []string `json:"rotated_ids"`

	// SkippedIDs lists the entries that could not be decrypted with the
	// current key and were left untouched (still under whichever key last
	// wrote them).
	SkippedIDs []string `json:"skipped_ids"`
}

// Rotated returns the number of successfully re-encrypted entries.
func (r RotationResult) Rotated() int { return len(r.RotatedIDs) }

// Skipped returns the number of entries left under their previous key.
func (r RotationResult) Skipped() int { return len(r.SkippedIDs) }
