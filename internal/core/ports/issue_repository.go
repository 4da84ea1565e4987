package ports

import (
	"context"

	"github.com/qoder/minijira/internal/core/domain"
)

// IssueRepository handles issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error)
	FindByID(ctx context.Context, id int64) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Issue, error)
	Update(ctx context.Context, issue *domain.Issue) error
	Delete(ctx context.Context, id int64) error

	// DeleteByProject removes all issues belonging to a project; used when
	// the project itself is deleted.
	DeleteByProject(ctx context.Context, projectID int64) error

	// CountByProjects counts issues across the given projects.
	CountByProjects(ctx context.Context, projectIDs []int64) (int64, error)
	CountByAssignee(ctx context.Context, assigneeID int64) (int64, error)
}
