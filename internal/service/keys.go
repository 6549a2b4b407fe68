package service

import (
	"encoding/base64"
)

// decodeKey decodes a base64-encoded vault key and checks it against the
// cipher's exact key size. This is a structural check only: it says nothing
// about whether the key is correct, merely whether it is shaped like a key.
func decodeKey(encoded string, keySize int) ([]byte, error) {
	if encoded == "" {
		return nil, ErrInvalidKeyFormat
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidKeyFormat
	}
	if len(key) != keySize {
		return nil, ErrInvalidKeyFormat
	}

	return key, nil
}

// zeroBytes overwrites a transient key buffer. Session-owned copies are
// managed by the registry; this is for buffers local to one call frame.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
