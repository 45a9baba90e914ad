package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances security against login latency. Verification reads the
// cost from the stored hash itself, so raising this later does not invalidate
// existing credentials.
const bcryptCost = 12

// PasswordService hashes and verifies password credentials with bcrypt.
// Hashes are self-describing: salt and cost travel inside the blob.
type PasswordService struct{}

func NewPasswordService() *PasswordService { return &PasswordService{} }

// Hash returns the bcrypt hash of password.
func (s *PasswordService) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hashed. A malformed hash counts as
// a mismatch, never an error.
func (s *PasswordService) Verify(password, hashed string) (bool, error) {
	if strings.TrimSpace(password) == "" {
		return false, fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(hashed) == "" {
		return false, fmt.Errorf("%w: hash must not be empty", ErrInvalidInput)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil, nil
}
