package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin lets the request through only when the claims stored by Auth
// carry isAdmin.  It must be chained after Auth; without claims on the
// context the request is treated as unauthenticated.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Claims are only present once Auth has accepted the token.
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied. no token provided"})
			}
			// Authenticated but not an admin.
			if !claims.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
			}
			return next(c)
		}
	}
}
