package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/service"
)

// GenreHandler serves /api/genres.
type GenreHandler struct {
	Catalog *service.Catalog
	Log     logrus.FieldLogger
}

func NewGenreHandler(catalog *service.Catalog, log logrus.FieldLogger) *GenreHandler {
	if catalog == nil {
		panic("nil catalog passed to NewGenreHandler")
	}
	return &GenreHandler{Catalog: catalog, Log: orStandard(log)}
}

func (h *GenreHandler) List(c echo.Context) error {
	ctx, cancel := storageCtx(c)
	defer cancel()
	all, err := h.Catalog.ListGenres(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, all)
}

func (h *GenreHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	g, err := h.Catalog.GetGenre(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GenreHandler) Create(c echo.Context) error {
	var in model.GenreInput
	if err := bind(c, &in); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	g, err := h.Catalog.CreateGenre(ctx, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}

// Update renames the genre.  Movies that embed it keep the old name.
func (h *GenreHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	var in model.GenreInput
	if err := bind(c, &in); err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	g, err := h.Catalog.RenameGenre(ctx, id, in)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	g, err := h.Catalog.DeleteGenre(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}
