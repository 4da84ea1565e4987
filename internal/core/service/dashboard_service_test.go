package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

type stubStatsCache struct {
	entries map[int64]*ports.DashboardStats
	gets    int
	hits    int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[int64]*ports.DashboardStats)}
}

func (c *stubStatsCache) Get(_ context.Context, userID int64) (*ports.DashboardStats, bool) {
	c.gets++
	if s, ok := c.entries[userID]; ok {
		c.hits++
		clone := *s
		return &clone, true
	}
	return nil, false
}

func (c *stubStatsCache) Set(_ context.Context, userID int64, stats *ports.DashboardStats) {
	clone := *stats
	c.entries[userID] = &clone
}

func (c *stubStatsCache) Invalidate(_ context.Context, userID int64) {
	delete(c.entries, userID)
}

func TestDashboardService_Stats(t *testing.T) {
	projects := newStubProjectRepo()
	issues := newStubIssueRepo()
	svc := NewDashboardService(projects, issues, nil, zerolog.Nop())

	mine := seedProject(t, projects, 1)
	other := seedProject(t, projects, 2)

	seed := []domain.Issue{
		{ProjectID: mine.ID, Title: "a", AssigneeID: 1},
		{ProjectID: mine.ID, Title: "b", AssigneeID: 2},
		{ProjectID: other.ID, Title: "c", AssigneeID: 1},
	}
	for i := range seed {
		if _, err := issues.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed issue: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalProjects != 1 {
		t.Fatalf("expected 1 owned project, got %d", stats.TotalProjects)
	}
	if stats.TotalIssues != 2 {
		t.Fatalf("expected 2 issues across owned projects, got %d", stats.TotalIssues)
	}
	if stats.MyIssues != 2 {
		t.Fatalf("expected 2 assigned issues, got %d", stats.MyIssues)
	}
}

func TestDashboardService_StatsCached(t *testing.T) {
	projects := newStubProjectRepo()
	issues := newStubIssueRepo()
	cache := newStubStatsCache()
	svc := NewDashboardService(projects, issues, cache, zerolog.Nop())

	seedProject(t, projects, 1)

	if _, err := svc.Stats(context.Background(), 1); err != nil {
		t.Fatalf("first stats: %v", err)
	}
	if _, err := svc.Stats(context.Background(), 1); err != nil {
		t.Fatalf("second stats: %v", err)
	}

	if cache.hits != 1 {
		t.Fatalf("expected second call to hit the cache, hits=%d", cache.hits)
	}
}
