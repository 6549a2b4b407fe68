package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned by Decrypt when the AEAD tag does
	// not verify. It is the single signal used to conclude that a submitted
	// vault key is wrong; callers must treat it as definitive, not transient.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidKeySize is returned when key material of the wrong length is
	// supplied to the engine.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrMalformedCiphertext is returned when the iv or tag accompanying a
	// ciphertext has an impossible length for the configured suite.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrUnknownSuite is returned by NewCipherEngine for an unrecognized
	// suite name.
	ErrUnknownSuite = errors.New("unknown cipher suite")
)
