package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qoder/minijira/internal/api/metrics"
	"github.com/qoder/minijira/internal/core/domain"
	"github.com/qoder/minijira/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type projectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{ID: p.ID, Name: p.Name, Description: p.Description, OwnerID: p.OwnerID}
}

// Create opens a new project owned by the caller.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      projectRequest  true  "Project details"
// @Success      200   {object}  apiResponse{data=projectResponse}
// @Security     BearerAuth
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     caller,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return ok(c, toProjectResponse(project))
}

// List returns the caller's projects.
//
// @Summary      List my projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  apiResponse{data=[]projectResponse}
// @Security     BearerAuth
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	projects, err := h.service.ListByOwner(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	resp := make([]projectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, toProjectResponse(&projects[i]))
	}
	return ok(c, resp)
}

// Get fetches a project by id. Any authenticated identity may read any
// project; ownership only gates mutations.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  apiResponse{data=projectResponse}
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, toProjectResponse(project))
}

// Update mutates a project; owner only.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Project id"
// @Param        body  body      projectRequest  true  "Project details"
// @Success      200   {object}  apiResponse{data=projectResponse}
// @Failure      403   {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Update(c.Request().Context(), id, caller, ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if domain.IsForbidden(err) {
			metrics.AuthzDeniedTotal.WithLabelValues("project").Inc()
		}
		return err
	}
	return ok(c, toProjectResponse(project))
}

// Delete removes a project and its issues; owner only.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  apiResponse
// @Failure      403  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
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
			metrics.AuthzDeniedTotal.WithLabelValues("project").Inc()
		}
		return err
	}
	return ok(c, nil)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
