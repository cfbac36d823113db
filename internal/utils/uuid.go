package utils

import "github.com/google/uuid"

// UUIDGenerator produces client-generated identifiers (idempotency keys,
// device ids). V7 UUIDs are preferred for their time-ordered prefix.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
