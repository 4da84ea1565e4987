package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qoder/minijira/internal/api/metrics"
	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

// IssueHandler handles HTTP requests for issue operations.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

type createIssueRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Priority    string `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID  int64  `json:"assigneeId" validate:"omitempty,gt=0"`
}

type updateIssueRequest struct {
	Title       string `json:"title" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID  int64  `json:"assigneeId" validate:"omitempty,gt=0"`
}

type issueResponse struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  int64  `json:"assigneeId,omitempty"`
}

func toIssueResponse(i *domain.Issue) issueResponse {
	return issueResponse{
		ID:          i.ID,
		ProjectID:   i.ProjectID,
		Title:       i.Title,
		Description: i.Description,
		Status:      string(i.Status),
		Priority:    string(i.Priority),
		AssigneeID:  i.AssigneeID,
	}
}

// Create opens a new issue under a project.
//
// @Summary      Create an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        projectId  path      int                 true  "Project id"
// @Param        body       body      createIssueRequest  true  "Issue details"
// @Success      200        {object}  apiResponse{data=issueResponse}
// @Failure      404        {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/projects/{projectId}/issues [post]
func (h *IssueHandler) Create(c echo.Context) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issue, err := h.service.Create(c.Request().Context(), projectID, ports.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}

	metrics.IssuesCreatedTotal.WithLabelValues(req.Priority).Inc()
	return ok(c, toIssueResponse(issue))
}

// List returns a project's issues.
//
// @Summary      List a project's issues
// @Tags         issues
// @Produce      json
// @Param        projectId  path      int  true  "Project id"
// @Success      200        {object}  apiResponse{data=[]issueResponse}
// @Failure      404        {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/projects/{projectId}/issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	issues, err := h.service.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return err
	}

	resp := make([]issueResponse, 0, len(issues))
	for i := range issues {
		resp = append(resp, toIssueResponse(&issues[i]))
	}
	return ok(c, resp)
}

// Update mutates an issue; only the owning project's owner may do so.
//
// @Summary      Update an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Issue id"
// @Param        body  body      updateIssueRequest  true  "Fields to change"
// @Success      200   {object}  apiResponse{data=issueResponse}
// @Failure      403   {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/issues/{id} [put]
func (h *IssueHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issue, err := h.service.Update(c.Request().Context(), id, caller, ports.UpdateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		if domain.IsForbidden(err) {
			metrics.AuthzDeniedTotal.WithLabelValues("issue").Inc()
		}
		return err
	}
	return ok(c, toIssueResponse(issue))
}

// Delete removes an issue; only the owning project's owner may do so.
//
// @Summary      Delete an issue
// @Tags         issues
// @Produce      json
// @Param        id   path      int  true  "Issue id"
// @Success      200  {object}  apiResponse
// @Failure      403  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/issues/{id} [delete]
func (h *IssueHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, caller); err != nil {
		if domain.IsForbidden(err) {
			metrics.AuthzDeniedTotal.WithLabelValues("issue").Inc()
		}
		return err
	}
	return ok(c, nil)
}
