package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for newly stored vault entries and reset
// tokens. Version 7 UUIDs are preferred because they sort by creation time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random v4 UUID if
// the monotonic clock source is unavailable.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
