package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

// IssueService implements issue CRUD. Mutations are authorized against the
// owning project's owner, never the issue itself.
type IssueService struct {
	repo     ports.IssueRepository
	projects ports.ProjectRepository
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewIssueService(repo ports.IssueRepository, projects ports.ProjectRepository, cache ports.StatsCache, logger zerolog.Logger) *IssueService {
	return &IssueService{repo: repo, projects: projects, cache: cache, logger: logger}
}

func (s *IssueService) Create(ctx context.Context, projectID int64, input ports.CreateIssueInput) (*domain.Issue, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	priority := domain.IssuePriority(input.Priority)
	if !domain.ValidPriority(priority) {
		return nil, &domain.Error{Code: 1000, Message: "priority must be one of: LOW, MEDIUM, HIGH, CRITICAL"}
	}

	now := time.Now().UTC()
	issue := &domain.Issue{
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.IssueOpen,
		Priority:    priority,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, issue)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, project.OwnerID)
	s.logger.Info().Int64("issue_id", created.ID).Int64("project_id", projectID).Msg("issue created")
	return created, nil
}

func (s *IssueService) ListByProject(ctx context.Context, projectID int64) ([]domain.Issue, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *IssueService) Update(ctx context.Context, id, callerID int64, input ports.UpdateIssueInput) (*domain.Issue, error) {
	issue, owner, err := s.findWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(callerID, owner, "update", "issue"); err != nil {
		return nil, err
	}

	if input.Title != "" {
		issue.Title = input.Title
	}
	if input.Description != "" {
		issue.Description = input.Description
	}
	if input.Status != "" {
		status := domain.IssueStatus(input.Status)
		if !domain.ValidStatus(status) {
			return nil, &domain.Error{Code: 1000, Message: "status must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED"}
		}
		issue.Status = status
	}
	if input.Priority != "" {
		priority := domain.IssuePriority(input.Priority)
		if !domain.ValidPriority(priority) {
			return nil, &domain.Error{Code: 1000, Message: "priority must be one of: LOW, MEDIUM, HIGH, CRITICAL"}
		}
		issue.Priority = priority
	}
	issue.AssigneeID = input.AssigneeID
	issue.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, issue); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, owner)
	return issue, nil
}

func (s *IssueService) Delete(ctx context.Context, id, callerID int64) error {
	_, owner, err := s.findWithOwner(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(callerID, owner, "delete", "issue"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, owner)
	s.logger.Info().Int64("issue_id", id).Msg("issue deleted")
	return nil
}

// findWithOwner loads an issue and the owner id of its project.
func (s *IssueService) findWithOwner(ctx context.Context, id int64) (*domain.Issue, int64, error) {
	issue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	project, err := s.projects.FindByID(ctx, issue.ProjectID)
	if err != nil {
		return nil, 0, err
	}
	return issue, project.OwnerID, nil
}

func (s *IssueService) invalidateStats(ctx context.Context, userID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
