// Package auth provides the concrete credential hasher and session issuer.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/userhive/account-api/internal/core/ports"
)

// hashCost is the bcrypt work factor. Fixed at 10 so hashes stay expensive
// enough to resist offline brute force while login latency stays bounded.
const hashCost = bcrypt.DefaultCost

// BcryptHasher implements ports.PasswordHasher with bcrypt. Each hash
// carries its own random salt.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// Hash returns the salted bcrypt digest of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is just
// a mismatch, never an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
