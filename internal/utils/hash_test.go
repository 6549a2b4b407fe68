package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestInitHasherPoolAndHash(t *testing.T) {
	key := "secret-key"
	InitHasherPool(key)

	data := []byte("test-data")

	sum1 := Hash(data)
	sum2 := Hash(data)

	if len(sum1) == 0 {
		t.Fatal("hash result is empty")
	}

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	// verify against direct HMAC computation
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	expected := h.Sum(nil)

	if !bytes.Equal(sum1, expected) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

func TestHashString(t *testing.T) {
	key := "test-secret-key"
	password := "account password"

	got := HashString(password, key)

	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(password))
	expected := hex.EncodeToString(h.Sum(nil))

	if got != expected {
		t.Fatalf("unexpected digest\nwant: %s\ngot:  %s", expected, got)
	}
}

func TestHashString_DifferentKeysDifferentDigests(t *testing.T) {
	password := "account password"

	first := HashString(password, "key-one")
	second := HashString(password, "key-two")

	if first == second {
		t.Fatal("digests under different keys must differ")
	}
}
