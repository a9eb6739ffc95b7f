package middleware

// identity.go holds the helpers that read what Auth or Identify left on the
// echo context.

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental-api/internal/utils"
)

// ClaimsFrom returns the verified claims for the request, if any.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// UserIDFrom returns the authenticated user's id, if any.
func UserIDFrom(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// userID is the bucket identity used by the rate limiter.  Requests without a
// valid token share the "anon" identity.
func userID(c echo.Context) string {
	if id, ok := UserIDFrom(c); ok {
		return id.String()
	}
	return "anon"
}
