package ports

import (
	"context"

	"github.com/qoder/minijira/internal/core/domain"
)

// ProjectRepository handles project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}
