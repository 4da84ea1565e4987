package ports

import (
	"context"

	"github.com/qoder/minijira/internal/core/domain"
)

// CreateProjectInput carries the data needed to create a project. OwnerID is
// the resolved identity of the caller, threaded explicitly from the request
// context; there is no ambient "current user" lookup.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     int64
}

// UpdateProjectInput carries a project mutation request.
type UpdateProjectInput struct {
	Name        string
	Description string
}

// ProjectService implements project CRUD with ownership enforcement on
// mutating operations. Reads are intentionally open to any authenticated
// identity.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, id, callerID int64, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id, callerID int64) error
}
