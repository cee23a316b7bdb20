package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/gophauth/internal/model"
)

// MinCost is the lowest bcrypt work factor the service accepts.
const MinCost = 10

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes and verifies passwords with bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt codec with the given work factor.
func NewBcrypt(cost int) *Bcrypt {
	return &Bcrypt{cost: cost}
}

// Hash derives a salted bcrypt hash of password. Every call uses a fresh salt.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches storedHash.
// A malformed or empty hash never matches.
func (b *Bcrypt) Verify(password, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
