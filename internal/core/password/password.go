// Package password wraps bcrypt hashing and verification for stored
// credentials. bcrypt salts internally, so hashing the same plaintext
// twice yields different strings.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash returns the bcrypt hash of plaintext at the default cost.
// Empty-input rejection is the caller's responsibility.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches hash. The comparison is
// constant-time inside bcrypt. A malformed hash is never an error here,
// it simply does not match.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
