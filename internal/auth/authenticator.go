package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Operator is the single account allowed to change the ledger.
type Operator struct {
	ID    string
	Email string
}

// NewOperator derives a stable operator ID from the email so tokens survive
// restarts without any stored user table.
func NewOperator(email string) *Operator {
	email = strings.ToLower(strings.TrimSpace(email))
	return &Operator{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		Email: email,
	}
}

// Authenticator defines the interface for authentication implementations.
// The ledger service only depends on this, so a different credential check
// can replace the password one without touching the service.
type Authenticator interface {
	// Authenticate verifies the credentials and returns the operator if
	// they match.
	Authenticate(ctx context.Context, email, credential string) (*Operator, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements before it is hashed or compared.
	ValidateCredential(credential string) error
}
