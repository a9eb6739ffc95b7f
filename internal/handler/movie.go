package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/service"
)

// MovieHandler serves /api/movies.
type MovieHandler struct {
	Catalog *service.Catalog
	Log     logrus.FieldLogger
}

func NewMovieHandler(catalog *service.Catalog, log logrus.FieldLogger) *MovieHandler {
	if catalog == nil {
		panic("nil catalog passed to NewMovieHandler")
	}
	return &MovieHandler{Catalog: catalog, Log: orStandard(log)}
}

func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := storageCtx(c)
	defer cancel()
	all, err := h.Catalog.ListMovies(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, all)
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	m, err := h.Catalog.GetMovie(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Create stores a movie with a snapshot of the genre named by genreId.  An
// unknown genre is a 400 and nothing is stored.
func (h *MovieHandler) Create(c echo.Context) error {
	var in model.MovieInput
	if err := bind(c, &in); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	m, err := h.Catalog.CreateMovie(ctx, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Update replaces the movie, re-reading its genre.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var in model.MovieInput
	if err := bind(c, &in); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	m, err := h.Catalog.UpdateMovie(ctx, id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	m, err := h.Catalog.DeleteMovie(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}
