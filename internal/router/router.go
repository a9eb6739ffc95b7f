// Package router binds handlers and middleware to URL paths.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental-api/internal/handler"
	"github.com/iliyamo/movie-rental-api/internal/middleware"
	"github.com/iliyamo/movie-rental-api/internal/utils"
)

// RegisterRoutes registers the operational endpoints.  db may be nil, in
// which case /readyz is not exposed.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, metrics *middleware.Metrics) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}
}

// RegisterAuth registers account routes.  Registration and login are public;
// /api/users/me requires a token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens *utils.TokenService) {
	e.POST("/api/users", a.Register)
	e.GET("/api/users/me", a.Me, middleware.Auth(tokens))
	e.POST("/api/auth", a.Login)
}

// RegisterCustomers registers the customer CRUD routes.  None of them
// require a token.
func RegisterCustomers(e *echo.Echo, h *handler.CustomerHandler) {
	g := e.Group("/api/customers")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterCatalog registers genre and movie routes.  Reads are public,
// create and replace need any valid token and delete needs an admin token.
func RegisterCatalog(e *echo.Echo, genres *handler.GenreHandler, movies *handler.MovieHandler, tokens *utils.TokenService) {
	auth := middleware.Auth(tokens)
	admin := middleware.RequireAdmin()

	g := e.Group("/api/genres")
	g.GET("", genres.List)
	g.GET("/:id", genres.Get)
	g.POST("", genres.Create, auth)
	g.PUT("/:id", genres.Update, auth)
	g.DELETE("/:id", genres.Delete, auth, admin)

	m := e.Group("/api/movies")
	m.GET("", movies.List)
	m.GET("/:id", movies.Get)
	m.POST("", movies.Create, auth)
	m.PUT("/:id", movies.Update, auth)
	m.DELETE("/:id", movies.Delete, auth, admin)
}
