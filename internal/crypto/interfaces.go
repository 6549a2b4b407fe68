package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_engine_mock.go -package=mock

// CipherEngine is the stateless authenticated-encryption primitive shared by
// every component that touches vault ciphertext. It never retains keys, has
// no side effects, and a failed authentication is definitive — there is no
// retry semantics.
//
// Decryption failure (tag mismatch) is the only signal the server ever uses
// to decide "the submitted key was wrong". No hash or other derivative of
// the key is stored anywhere, which is what keeps the scheme zero-knowledge.
type CipherEngine interface {
	// Encrypt seals plaintext under key with a fresh random IV and returns
	// the ciphertext, the IV, and the integrity tag as separate values.
	// An IV is never reused under the same key.
	Encrypt(plaintext, key []byte) (ciphertext, iv, authTag []byte, err error)

	// Decrypt opens ciphertext with the given IV, tag and key. It returns
	// [ErrAuthenticationFailed] when the key is wrong or the ciphertext was
	// tampered with; it never returns unauthenticated plaintext.
	Decrypt(ciphertext, iv, authTag, key []byte) ([]byte, error)

	// KeySize returns the exact key length in bytes the engine accepts,
	// used for structural validation of submitted keys.
	KeySize() int
}
