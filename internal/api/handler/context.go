package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qoder/minijira/internal/api/middleware"
)

// callerID extracts the identity resolved by the Auth middleware and fails
// fast with 401 when it is absent. Handlers thread the returned id into the
// services explicitly; there is no ambient current-user lookup anywhere.
func callerID(c echo.Context) (int64, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return identity.UserID, nil
}
