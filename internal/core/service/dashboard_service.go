package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/ports"
)

// DashboardService aggregates the caller's project and issue counters,
// read-through cached to keep the dashboard poll cheap.
type DashboardService struct {
	projects ports.ProjectRepository
	issues   ports.IssueRepository
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewDashboardService(projects ports.ProjectRepository, issues ports.IssueRepository, cache ports.StatsCache, logger zerolog.Logger) *DashboardService {
	return &DashboardService{projects: projects, issues: issues, cache: cache, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context, userID int64) (*ports.DashboardStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx, userID); ok {
			return stats, nil
		}
	}

	totalProjects, err := s.projects.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, err := s.projects.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	projectIDs := make([]int64, 0, len(owned))
	for _, p := range owned {
		projectIDs = append(projectIDs, p.ID)
	}

	totalIssues, err := s.issues.CountByProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	myIssues, err := s.issues.CountByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{
		TotalProjects: totalProjects,
		TotalIssues:   totalIssues,
		MyIssues:      myIssues,
	}
	if s.cache != nil {
		s.cache.Set(ctx, userID, stats)
	}
	return stats, nil
}
