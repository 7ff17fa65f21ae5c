package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"blog-api/internal/domain/entity"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	Cost int
}

// Hash returns the bcrypt hash of password.
// Passwords longer than 72 bytes are rejected as a validation error.
func (h PasswordHasher) Hash(password string) ([]byte, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, entity.ValidationErrors{{Field: "password", Message: "is too long (maximum is 72 bytes)"}}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Compare reports whether password matches hash.
func (h PasswordHasher) Compare(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
