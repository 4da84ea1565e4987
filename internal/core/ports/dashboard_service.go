package ports

import "context"

// DashboardStats aggregates per-user counters for the dashboard view.
type DashboardStats struct {
	TotalProjects int64 `json:"totalProjects"`
	TotalIssues   int64 `json:"totalIssues"`
	MyIssues      int64 `json:"myIssues"`
}

// DashboardService computes (and may cache) the caller's dashboard stats.
type DashboardService interface {
	Stats(ctx context.Context, userID int64) (*DashboardStats, error)
}

// StatsCache is a best-effort read-through cache for dashboard stats.
// A miss or a cache error never fails the request.
type StatsCache interface {
	Get(ctx context.Context, userID int64) (*DashboardStats, bool)
	Set(ctx context.Context, userID int64, stats *DashboardStats)
	Invalidate(ctx context.Context, userID int64)
}
