package utils

import (
	"github.com/google/uuid"
)

// GenerateVisitorID generates a UUID string used as the per-browser visitor
// identifier. The ID lives in a cookie, so each browser profile counts as a
// separate visitor.
func GenerateVisitorID() string {
	return uuid.NewString()
}
