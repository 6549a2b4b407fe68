package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries values that fail structural validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")
	// ErrWrongPassword is returned when account credentials do not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrTokenCreationFailed is returned when a JWT could not be issued.
	ErrTokenCreationFailed = errors.New("token creation failed")
	// ErrTokenIsExpiredOrInvalid normalises every JWT validation failure so
	// callers never inspect low-level parsing errors.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidKeyFormat is returned when a submitted vault key is not valid
	// base64 or decodes to the wrong length. Structural rejection happens
	// before any limiter accounting: a malformed key is not an attempt.
	ErrInvalidKeyFormat = errors.New("invalid key format")
	// ErrTooManyUnlockAttempts is returned when the failure budget for the
	// current window is exhausted. No decryption is performed in this state.
	ErrTooManyUnlockAttempts = errors.New("too many unlock attempts")
	// ErrInvalidKey is returned when a structurally valid key fails to
	// authenticate against the vault's ciphertext. This is the only wrong-key
	// signal the server can produce: nothing derived from the correct key is
	// stored, so a tag mismatch is all there is.
	ErrInvalidKey = errors.New("invalid vault key")
	// ErrSessionRequired is returned when an operation needs an active unlock
	// session and none exists (never created, expired, or explicitly locked).
	ErrSessionRequired = errors.New("active unlock session required")

	// ErrKeyMismatch is returned when the current key submitted for rotation
	// does not exactly match the key bound in the caller's unlock session.
	ErrKeyMismatch = errors.New("current key does not match unlock session key")
	// ErrRotationIneffective is returned when a vault with at least one entry
	// had zero entries successfully re-encrypted. Nothing is written and the
	// session is left on the old key.
	ErrRotationIneffective = errors.New("rotation re-encrypted no entries")

	// ErrInvalidResetToken is returned for any unusable reset token: unknown,
	// expired, or already consumed. The cases are deliberately not
	// distinguishable from the outside.
	ErrInvalidResetToken = errors.New("invalid reset token")
	// ErrResetNotConfirmed is returned when a reset confirmation arrives
	// without the explicit confirm flag. The operation destroys the whole
	// vault, so an unambiguous acknowledgement is mandatory.
	ErrResetNotConfirmed = errors.New("reset requires explicit confirmation")
	// ErrTooManyResetRequests is returned when a requester exceeds the
	// reset-request budget for the current window.
	ErrTooManyResetRequests = errors.New("too many reset requests")

	// ErrEntryPayloadInvalid is returned when an entry payload fails
	// validation before encryption.
	ErrEntryPayloadInvalid = errors.New("invalid entry payload")
)
