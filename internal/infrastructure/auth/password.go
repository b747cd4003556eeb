package auth

import (
	"golang.org/x/crypto/bcrypt"

	"eventreg/internal/ports/output"
)

var _ output.PasswordHasher = BcryptHasher{}

// BcryptHasher hashes passwords with bcrypt at Cost (bcrypt.DefaultCost when 0).
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
