package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/qoder/minijira/internal/auth"
)

// identityKey is the single echo-context key under which the resolved
// identity is stored. Resolution happens exactly once per request, here,
// before any handler logic runs.
const identityKey = "identity"

// Identity is the per-request resolved view of a verified bearer token.
type Identity struct {
	UserID   int64
	Username string
}

// Auth verifies the bearer token and attaches the resolved Identity to the
// request context. Every token failure — missing, expired, tampered or
// malformed — collapses to the same 401-class response so the caller learns
// nothing about which check failed.
func Auth(codec *auth.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated()
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthenticated()
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return unauthenticated()
			}

			userID, username, err := claims.Identity()
			if err != nil {
				return unauthenticated()
			}

			c.Set(identityKey, Identity{UserID: userID, Username: username})
			return next(c)
		}
	}
}

// IdentityFrom extracts the identity resolved by Auth. The second return is
// false when the middleware did not run or rejected the request.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func unauthenticated() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
}
