package domain

import "time"

// IssueStatus represents the workflow state of an issue.
type IssueStatus string

const (
	IssueOpen       IssueStatus = "OPEN"
	IssueInProgress IssueStatus = "IN_PROGRESS"
	IssueResolved   IssueStatus = "RESOLVED"
	IssueClosed     IssueStatus = "CLOSED"
)

// IssuePriority represents the urgency of an issue.
type IssuePriority string

const (
	PriorityLow      IssuePriority = "LOW"
	PriorityMedium   IssuePriority = "MEDIUM"
	PriorityHigh     IssuePriority = "HIGH"
	PriorityCritical IssuePriority = "CRITICAL"
)

// ValidStatus reports whether s is a known issue status.
func ValidStatus(s IssueStatus) bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known issue priority.
func ValidPriority(p IssuePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Issue is a unit of work tracked within a project. Mutations are gated by
// the owning project's ownership, not by the issue itself.
type Issue struct {
	ID          int64         `json:"id"`
	ProjectID   int64         `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      IssueStatus   `json:"status"`
	Priority    IssuePriority `json:"priority"`
	AssigneeID  int64         `json:"assignee_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
