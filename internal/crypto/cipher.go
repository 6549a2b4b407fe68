// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Avdeev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Suite names an AEAD construction supported by the cipher engine.
type Suite string

const (
	// SuiteAESGCM is AES-256-GCM: 32-byte key, 12-byte nonce, 16-byte tag.
	SuiteAESGCM Suite = "aes-256-gcm"

	// SuiteChaCha20Poly1305 is ChaCha20-Poly1305 with the same key, nonce
	// and tag sizes as SuiteAESGCM, preferable on hardware without AES-NI.
	SuiteChaCha20Poly1305 Suite = "chacha20-poly1305"
)

// Sizes shared by both supported suites.
const (
	keySize   = 32
	nonceSize = 12
	tagSize   = 16
)

// cipherEngine is the private implementation of [CipherEngine]. It holds
// only the suite selector; key material passes through call arguments and is
// never stored on the receiver.
type cipherEngine struct {
	suite Suite
}

// NewCipherEngine constructs a [CipherEngine] for the given suite.
// Returns an error for unknown suite names so that a configuration typo
// fails at startup rather than at first encryption.
func NewCipherEngine(suite Suite) (CipherEngine, error) {
	switch suite {
	case SuiteAESGCM, SuiteChaCha20Poly1305:
		return &cipherEngine{suite: suite}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, suite)
	}
}

// aead builds the AEAD instance for the engine's suite around key.
// The returned value lives only for the duration of one Encrypt/Decrypt call.
func (c *cipherEngine) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), keySize)
	}

	switch c.suite {
	case SuiteChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		return cipher.NewGCM(block)
	}
}

// Encrypt implements [CipherEngine]. A fresh 12-byte IV is read from the OS
// CSPRNG on every call. The Seal output is split so that ciphertext and tag
// are returned (and stored) as separate values.
func (c *cipherEngine) Encrypt(plaintext, key []byte) ([]byte, []byte, []byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, nil, nil, err
	}

	iv := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends the tag to the ciphertext; split it back out.
	sealed := aead.Seal(nil, iv, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	authTag := sealed[len(sealed)-tagSize:]

	return ciphertext, iv, authTag, nil
}

// Decrypt implements [CipherEngine]. It re-joins ciphertext and tag the way
// Open expects and verifies both integrity and key correctness in one step.
// A tag mismatch means the key is wrong or the data was tampered with; the
// two cases are indistinguishable on purpose.
func (c *cipherEngine) Decrypt(ciphertext, iv, authTag, key []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != nonceSize {
		return nil, fmt.Errorf("%w: iv is %d bytes, want %d", ErrMalformedCiphertext, len(iv), nonceSize)
	}
	if len(authTag) != tagSize {
		return nil, fmt.Errorf("%w: tag is %d bytes, want %d", ErrMalformedCiphertext, len(authTag), tagSize)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(authTag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, authTag...)

	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// KeySize implements [CipherEngine].
func (c *cipherEngine) KeySize() int {
	return keySize
}
