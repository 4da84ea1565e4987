package ports

import (
	"context"

	"github.com/qoder/minijira/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
// The backing store must hold unique constraints on username and email so
// that two concurrent registrations racing on the same value cannot both
// succeed; a plain check-then-insert is not enough.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
