package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the default bcrypt cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash produces a self-contained salted hash. Two calls with the same
// password yield different hashes.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A malformed hash is
// treated as a mismatch, never as an error: the authentication path
// must see it as wrong credentials.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
