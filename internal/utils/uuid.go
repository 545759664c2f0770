package utils

import "github.com/google/uuid"

// UUIDGenerator issues client-side entity ids. Ids are chosen locally so
// that the remote directory names and the local primary keys agree.
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
