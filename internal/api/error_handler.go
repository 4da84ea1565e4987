package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/domain"
)

// errorResponse is the error envelope: same shape as the success envelope
// minus the data field.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps business errors to their {code, message} pair and HTTP status.
//   - Maps echo's own errors (bind failures, router 404s, middleware 401s)
//     into the same envelope.
//   - Logs unexpected errors internally and answers with a generic 5000
//     response that leaks nothing.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Code: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (status, code int, msg string) {
	var be *domain.Error
	if errors.As(err, &be) {
		return statusForCode(be.Code), be.Code, be.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, codeForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, 5000, "Internal server error"
}

// statusForCode maps a business error code to its HTTP status class.
func statusForCode(code int) int {
	switch code {
	case 1000:
		return http.StatusBadRequest
	case 2000:
		return http.StatusUnauthorized
	case 3000:
		return http.StatusNotFound
	case 403:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// codeForStatus maps transport-level failures into the business taxonomy so
// every error, even a router 404, wears the same envelope.
func codeForStatus(status int) int {
	switch status {
	case http.StatusBadRequest:
		return 1000
	case http.StatusUnauthorized:
		return 2000
	case http.StatusNotFound:
		return 3000
	case http.StatusForbidden:
		return 403
	default:
		return 5000
	}
}
