package ports

import (
	"context"

	"github.com/qoder/minijira/internal/core/domain"
)

// AuthService implements credential registration and login.
type AuthService interface {
	// Register creates a new identity. Email uniqueness is checked before
	// username uniqueness; the distinction is reported to the caller.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login resolves the identifier first as an email and then as a
	// username, verifies the password, and issues a signed bearer token.
	// Unknown identity and wrong password are indistinguishable to callers.
	Login(ctx context.Context, usernameOrEmail, password string) (string, error)
}
