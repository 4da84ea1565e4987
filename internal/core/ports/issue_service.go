package ports

import (
	"context"

	"github.com/qoder/minijira/internal/core/domain"
)

// CreateIssueInput carries the data needed to open an issue under a project.
type CreateIssueInput struct {
	Title       string
	Description string
	Priority    string
	AssigneeID  int64
}

// UpdateIssueInput carries an issue mutation request. Zero values leave the
// corresponding field unchanged, except AssigneeID which is applied as given.
type UpdateIssueInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  int64
}

// IssueService implements issue CRUD. Mutations require the caller to own
// the issue's project.
type IssueService interface {
	Create(ctx context.Context, projectID int64, input CreateIssueInput) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Issue, error)
	Update(ctx context.Context, id, callerID int64, input UpdateIssueInput) (*domain.Issue, error)
	Delete(ctx context.Context, id, callerID int64) error
}
