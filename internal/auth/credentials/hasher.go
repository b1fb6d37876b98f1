package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor, 10 salt rounds.
const DefaultCost = 10

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plaintext password using bcrypt. The salt is embedded
// in the token, so hashing the same plaintext twice yields different
// tokens.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("credentials: hash password: %w", err)
	}
	return string(bytes), nil
}

// Verify reports whether password matches hash. A mismatch is a normal
// false result, not an error; only a malformed hash token is an error.
func (h *Hasher) Verify(hash string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("credentials: verify password: %w", err)
	}
}
