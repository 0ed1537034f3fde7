package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashAccessCode produces a bcrypt hash suitable for the ADMIN_CODE_HASH
// config value.
func HashAccessCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckAccessCodeHash compares a submitted code against a bcrypt hash.
func CheckAccessCodeHash(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

// SecureCompare performs a constant-time comparison of two strings.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
