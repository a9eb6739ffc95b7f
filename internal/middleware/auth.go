package middleware // reusable HTTP middleware: auth, roles, rate limiting, metrics and logging

import (
	"net/http" // HTTP status codes for responses
	"strings"  // trimming the raw header value

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/movie-rental-api/internal/utils" // token issuing and verification
)

// TokenHeader carries the auth token on requests and on the register and
// login responses.
const TokenHeader = "x-auth-token"

// Context keys set by Auth and Identify.
const (
	ClaimsKey  = "claims"   // *utils.Claims
	UserIDKey  = "user_id"  // uuid.UUID
	IsAdminKey = "is_admin" // bool
)

// Auth verifies the token in the x-auth-token header.  A request without a
// token is answered with 401; a token that fails verification gets 400.  On
// success the decoded claims, the user id (uuid.UUID) and the admin flag are
// stored on the context for handlers and later middleware.
func Auth(tokens *utils.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Identify may already have verified this header.
			if _, ok := ClaimsFrom(c); ok {
				return next(c)
			}
			raw := strings.TrimSpace(c.Request().Header.Get(TokenHeader))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied. no token provided"})
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token"})
			}
			attach(c, claims)
			return next(c)
		}
	}
}

// Identify attaches the caller's identity when the request carries a valid
// token and never rejects anything.  It runs globally ahead of the rate
// limiter so that per-user buckets see the user; Auth still guards the
// routes that need a token.
func Identify(tokens *utils.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(TokenHeader))
			if raw == "" {
				return next(c)
			}
			// A bad token is left for Auth to answer on protected routes.
			if claims, err := tokens.Verify(raw); err == nil {
				attach(c, claims)
			}
			return next(c)
		}
	}
}

func attach(c echo.Context, claims *utils.Claims) {
	// Verify already rejects a subject that is not a uuid.
	uid, _ := claims.UserID()

	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, uid)
	c.Set(IsAdminKey, claims.IsAdmin)
}
