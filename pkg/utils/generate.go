package utils

import (
	"github.com/google/uuid"
)

// GenerateIdempotencyKey returns a fresh key a client can attach to a
// create request so a retry after a timeout cannot double-book.
func GenerateIdempotencyKey() string {
	return uuid.New().String()
}
