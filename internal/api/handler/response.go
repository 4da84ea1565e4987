package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// apiResponse is the envelope every endpoint returns. Code 0 means success;
// non-zero codes follow the business error taxonomy and are produced by the
// central error handler, never here.
type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ok writes a success envelope with the given payload (nil for empty-body
// operations like register).
func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, apiResponse{Code: 0, Message: "success", Data: data})
}
