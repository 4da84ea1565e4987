package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

// ProjectService implements project CRUD. Update and Delete require the
// caller to be the project owner; Get and List do not.
type ProjectService struct {
	repo   ports.ProjectRepository
	issues ports.IssueRepository
	cache  ports.StatsCache
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, issues ports.IssueRepository, cache ports.StatsCache, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, issues: issues, cache: cache, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, input.OwnerID)
	s.logger.Info().Int64("project_id", created.ID).Int64("owner_id", created.OwnerID).Msg("project created")
	return created, nil
}

func (s *ProjectService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id, callerID int64, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(callerID, project.OwnerID, "update", "project"); err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Description = input.Description
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, callerID int64) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(callerID, project.OwnerID, "delete", "project"); err != nil {
		return err
	}

	if err := s.issues.DeleteByProject(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx, callerID)
	s.logger.Info().Int64("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) invalidateStats(ctx context.Context, userID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
