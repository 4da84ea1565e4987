package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/api/handler"
	"github.com/qoder/minijira/internal/api/middleware"
	"github.com/qoder/minijira/internal/auth"
	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/service"
)

// In-memory repositories backing the end-to-end flow.

type memUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	created := *user
	created.ID = r.nextID
	r.users[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

type memProjectRepo struct {
	projects map[int64]*domain.Project
	nextID   int64
}

func (r *memProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.nextID++
	created := *p
	created.ID = r.nextID
	r.projects[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *memProjectRepo) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *memProjectRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id int64) error {
	delete(r.projects, id)
	return nil
}

func (r *memProjectRepo) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type memIssueRepo struct {
	issues map[int64]*domain.Issue
	nextID int64
}

func (r *memIssueRepo) Create(_ context.Context, i *domain.Issue) (*domain.Issue, error) {
	r.nextID++
	created := *i
	created.ID = r.nextID
	r.issues[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *memIssueRepo) FindByID(_ context.Context, id int64) (*domain.Issue, error) {
	if i, ok := r.issues[id]; ok {
		clone := *i
		return &clone, nil
	}
	return nil, domain.ErrIssueNotFound
}

func (r *memIssueRepo) ListByProject(_ context.Context, projectID int64) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, i := range r.issues {
		if i.ProjectID == projectID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *memIssueRepo) Update(_ context.Context, i *domain.Issue) error {
	if _, ok := r.issues[i.ID]; !ok {
		return domain.ErrIssueNotFound
	}
	clone := *i
	r.issues[i.ID] = &clone
	return nil
}

func (r *memIssueRepo) Delete(_ context.Context, id int64) error {
	delete(r.issues, id)
	return nil
}

func (r *memIssueRepo) DeleteByProject(_ context.Context, projectID int64) error {
	for id, i := range r.issues {
		if i.ProjectID == projectID {
			delete(r.issues, id)
		}
	}
	return nil
}

func (r *memIssueRepo) CountByProjects(_ context.Context, projectIDs []int64) (int64, error) {
	return 0, nil
}

func (r *memIssueRepo) CountByAssignee(_ context.Context, assigneeID int64) (int64, error) {
	return 0, nil
}

// newTestServer wires the real services, middleware and error handler over
// in-memory stores.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()
	codec := auth.NewTokenCodec("e2e-secret", time.Hour)

	userRepo := &memUserRepo{users: make(map[int64]*domain.User)}
	projectRepo := &memProjectRepo{projects: make(map[int64]*domain.Project)}
	issueRepo := &memIssueRepo{issues: make(map[int64]*domain.Issue)}

	authService := service.NewAuthService(userRepo, codec, log)
	projectService := service.NewProjectService(projectRepo, issueRepo, nil, log)
	issueService := service.NewIssueService(issueRepo, projectRepo, nil, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	issueHandler := handler.NewIssueHandler(issueService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	authed := e.Group("/api", middleware.Auth(codec))
	authed.POST("/projects", projectHandler.Create)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.PUT("/projects/:id", projectHandler.Update)
	authed.DELETE("/projects/:id", projectHandler.Delete)
	authed.POST("/projects/:projectId/issues", issueHandler.Create)
	authed.PUT("/issues/:id", issueHandler.Update)

	return e
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) (int, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid envelope %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func login(t *testing.T, e *echo.Echo, identifier, password string) string {
	t.Helper()
	status, env := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"usernameOrEmail":%q,"password":%q}`, identifier, password))
	if status != http.StatusOK {
		t.Fatalf("login %q: status %d (%s)", identifier, status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login %q: no token in %s", identifier, env.Data)
	}
	return data.Token
}

func TestEndToEnd_OwnershipFlow(t *testing.T) {
	e := newTestServer(t)

	// register two users
	for _, body := range []string{
		`{"username":"alice","email":"alice@x.com","password":"secret1"}`,
		`{"username":"mallory","email":"mallory@x.com","password":"secret2"}`,
	} {
		status, env := doJSON(t, e, http.MethodPost, "/api/auth/register", "", body)
		if status != http.StatusOK || env.Code != 0 {
			t.Fatalf("register: status %d code %d (%s)", status, env.Code, env.Message)
		}
	}

	aliceToken := login(t, e, "alice", "secret1")
	malloryToken := login(t, e, "mallory@x.com", "secret2")

	// alice creates a project
	status, env := doJSON(t, e, http.MethodPost, "/api/projects", aliceToken, `{"name":"Apollo","description":"moonshot"}`)
	if status != http.StatusOK {
		t.Fatalf("create project: status %d (%s)", status, env.Message)
	}
	var project struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &project); err != nil || project.ID == 0 {
		t.Fatalf("create project: bad data %s", env.Data)
	}

	projectPath := fmt.Sprintf("/api/projects/%d", project.ID)

	// owner update succeeds
	if status, env = doJSON(t, e, http.MethodPut, projectPath, aliceToken, `{"name":"Apollo 11"}`); status != http.StatusOK {
		t.Fatalf("owner update: status %d (%s)", status, env.Message)
	}

	// non-owner update is forbidden with the 403 business code
	status, env = doJSON(t, e, http.MethodPut, projectPath, malloryToken, `{"name":"hijack"}`)
	if status != http.StatusForbidden || env.Code != 403 {
		t.Fatalf("non-owner update: status %d code %d (%s)", status, env.Code, env.Message)
	}
	if !strings.HasPrefix(env.Message, "Not authorized") {
		t.Fatalf("unexpected forbidden message: %q", env.Message)
	}

	// but a non-owner read is allowed
	if status, env = doJSON(t, e, http.MethodGet, projectPath, malloryToken, ""); status != http.StatusOK {
		t.Fatalf("non-owner read: status %d (%s)", status, env.Message)
	}

	// issue mutations follow the project owner
	status, env = doJSON(t, e, http.MethodPost, projectPath+"/issues", malloryToken, `{"title":"bug","priority":"HIGH"}`)
	if status != http.StatusOK {
		t.Fatalf("create issue: status %d (%s)", status, env.Message)
	}
	var issue struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &issue); err != nil || issue.ID == 0 {
		t.Fatalf("create issue: bad data %s", env.Data)
	}

	issuePath := fmt.Sprintf("/api/issues/%d", issue.ID)
	status, env = doJSON(t, e, http.MethodPut, issuePath, malloryToken, `{"status":"CLOSED"}`)
	if status != http.StatusForbidden || env.Code != 403 {
		t.Fatalf("non-owner issue update: status %d code %d", status, env.Code)
	}
	if status, env = doJSON(t, e, http.MethodPut, issuePath, aliceToken, `{"status":"CLOSED"}`); status != http.StatusOK {
		t.Fatalf("owner issue update: status %d (%s)", status, env.Message)
	}
}

func TestEndToEnd_Unauthenticated(t *testing.T) {
	e := newTestServer(t)

	// no token
	status, env := doJSON(t, e, http.MethodPost, "/api/projects", "", `{"name":"x"}`)
	if status != http.StatusUnauthorized || env.Code != 2000 {
		t.Fatalf("missing token: status %d code %d", status, env.Code)
	}

	// garbage token
	status, env = doJSON(t, e, http.MethodPost, "/api/projects", "garbage", `{"name":"x"}`)
	if status != http.StatusUnauthorized || env.Code != 2000 {
		t.Fatalf("bad token: status %d code %d", status, env.Code)
	}
}

func TestEndToEnd_LoginFailuresIdentical(t *testing.T) {
	e := newTestServer(t)

	status, env := doJSON(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"alice@x.com","password":"secret1"}`)
	if status != http.StatusOK {
		t.Fatalf("register: status %d (%s)", status, env.Message)
	}

	_, unknown := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		`{"usernameOrEmail":"ghost","password":"whatever"}`)
	_, wrongPass := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		`{"usernameOrEmail":"alice","password":"wrong"}`)

	if unknown.Code != 2000 || wrongPass.Code != 2000 {
		t.Fatalf("expected code 2000 for both, got %d and %d", unknown.Code, wrongPass.Code)
	}
	if unknown.Message != wrongPass.Message {
		t.Fatalf("messages differ: %q vs %q", unknown.Message, wrongPass.Message)
	}
}

func TestEndToEnd_DuplicateRegistration(t *testing.T) {
	e := newTestServer(t)

	status, _ := doJSON(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"alice@x.com","password":"secret1"}`)
	if status != http.StatusOK {
		t.Fatalf("first register: status %d", status)
	}

	status, env := doJSON(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice2","email":"alice@x.com","password":"secret1"}`)
	if status != http.StatusBadRequest || env.Code != 1000 || env.Message != "Email already registered" {
		t.Fatalf("duplicate email: status %d code %d message %q", status, env.Code, env.Message)
	}

	status, env = doJSON(t, e, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"alice2@x.com","password":"secret1"}`)
	if status != http.StatusBadRequest || env.Code != 1000 || env.Message != "Username already taken" {
		t.Fatalf("duplicate username: status %d code %d message %q", status, env.Code, env.Message)
	}
}
