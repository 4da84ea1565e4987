package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/qoder/minijira/internal/core/ports"
)

// DashboardHandler serves the per-user stats endpoint.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats returns the caller's project and issue counters.
//
// @Summary      Dashboard stats
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  apiResponse{data=ports.DashboardStats}
// @Security     BearerAuth
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return ok(c, stats)
}
