package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

type stubProjectRepo struct {
	projects map[int64]*domain.Project
	nextID   int64
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[int64]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.nextID++
	created := *project
	created.ID = r.nextID
	r.projects[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type stubIssueRepo struct {
	issues map[int64]*domain.Issue
	nextID int64
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{issues: make(map[int64]*domain.Issue)}
}

func (r *stubIssueRepo) Create(_ context.Context, issue *domain.Issue) (*domain.Issue, error) {
	r.nextID++
	created := *issue
	created.ID = r.nextID
	r.issues[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubIssueRepo) FindByID(_ context.Context, id int64) (*domain.Issue, error) {
	if i, ok := r.issues[id]; ok {
		clone := *i
		return &clone, nil
	}
	return nil, domain.ErrIssueNotFound
}

func (r *stubIssueRepo) ListByProject(_ context.Context, projectID int64) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, i := range r.issues {
		if i.ProjectID == projectID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	if _, ok := r.issues[issue.ID]; !ok {
		return domain.ErrIssueNotFound
	}
	clone := *issue
	r.issues[issue.ID] = &clone
	return nil
}

func (r *stubIssueRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.issues[id]; !ok {
		return domain.ErrIssueNotFound
	}
	delete(r.issues, id)
	return nil
}

func (r *stubIssueRepo) DeleteByProject(_ context.Context, projectID int64) error {
	for id, i := range r.issues {
		if i.ProjectID == projectID {
			delete(r.issues, id)
		}
	}
	return nil
}

func (r *stubIssueRepo) CountByProjects(_ context.Context, projectIDs []int64) (int64, error) {
	ids := make(map[int64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		ids[id] = struct{}{}
	}
	var n int64
	for _, i := range r.issues {
		if _, ok := ids[i.ProjectID]; ok {
			n++
		}
	}
	return n, nil
}

func (r *stubIssueRepo) CountByAssignee(_ context.Context, assigneeID int64) (int64, error) {
	var n int64
	for _, i := range r.issues {
		if i.AssigneeID == assigneeID {
			n++
		}
	}
	return n, nil
}

func TestAuthorizeOwner(t *testing.T) {
	if err := authorizeOwner(5, 5, "update", "project"); err != nil {
		t.Fatalf("matching ids should allow: %v", err)
	}

	err := authorizeOwner(5, 6, "update", "project")
	if err == nil {
		t.Fatalf("mismatched ids should deny")
	}
	var be *domain.Error
	if !errors.As(err, &be) || be.Code != 403 {
		t.Fatalf("expected 403 error, got %v", err)
	}
	if be.Message != "Not authorized to update this project" {
		t.Fatalf("unexpected message: %q", be.Message)
	}
}

func TestProjectService_CreateAndGet(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubIssueRepo(), nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateProjectInput{
		Name:        "Apollo",
		Description: "moonshot",
		OwnerID:     1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.OwnerID != 1 {
		t.Fatalf("unexpected project: %+v", created)
	}

	// reads are open to any authenticated identity, owner or not
	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Apollo" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
}

func TestProjectService_Update_OwnerOnly(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, newStubIssueRepo(), nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "Apollo", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, 1, ports.UpdateProjectInput{Name: "Apollo 11"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Apollo 11" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}

	if _, err := svc.Update(context.Background(), created.ID, 2, ports.UpdateProjectInput{Name: "hijack"}); !domain.IsForbidden(err) {
		t.Fatalf("non-owner update: expected forbidden, got %v", err)
	}
}

func TestProjectService_Delete_OwnerOnly_CascadesIssues(t *testing.T) {
	projects := newStubProjectRepo()
	issues := newStubIssueRepo()
	svc := NewProjectService(projects, issues, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "Apollo", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := issues.Create(context.Background(), &domain.Issue{ProjectID: created.ID, Title: "bug"}); err != nil {
		t.Fatalf("seed issue: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, 2); !domain.IsForbidden(err) {
		t.Fatalf("non-owner delete: expected forbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, 1); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	remaining, _ := issues.ListByProject(context.Background(), created.ID)
	if len(remaining) != 0 {
		t.Fatalf("expected cascade delete of issues, %d left", len(remaining))
	}
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), newStubIssueRepo(), nil, zerolog.Nop())

	if _, err := svc.Update(context.Background(), 99, 1, ports.UpdateProjectInput{Name: "x"}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
