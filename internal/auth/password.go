package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// PasswordAuthenticator checks a password against the operator's configured
// bcrypt hash.
type PasswordAuthenticator struct {
	operator     *Operator
	passwordHash []byte
}

// NewPasswordAuthenticator creates an authenticator for the operator with the
// given email and bcrypt password hash.
func NewPasswordAuthenticator(email, passwordHash string) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		operator:     NewOperator(email),
		passwordHash: []byte(passwordHash),
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Authenticate verifies the email and password, returning the operator if
// valid. Unknown email and wrong password give the same error.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*Operator, error) {
	if !strings.EqualFold(strings.TrimSpace(email), a.operator.Email) {
		// Compare anyway so both failures take the same time.
		_ = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(credential))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a.operator, nil
}

// HashPassword returns the bcrypt hash to put in OPERATOR_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
