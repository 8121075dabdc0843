package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/filmstore/sakila-api/internal/repository"
)

// FilmStore is the slice of the repository the film handlers need.
type FilmStore interface {
	Search(ctx context.Context, q repository.FilmSearchQuery) ([]repository.FilmRow, int64, error)
	GetByID(ctx context.Context, id uint64) (*repository.FilmDetail, error)
	TopRented(ctx context.Context) ([]repository.TopFilmRow, error)
}

// FilmHandler serves the /api/films and /api/film endpoints.
type FilmHandler struct {
	Store FilmStore
	Log   zerolog.Logger
}

// NewFilmHandler constructs a FilmHandler with a non-nil store.
func NewFilmHandler(store FilmStore, log zerolog.Logger) *FilmHandler {
	if store == nil {
		panic("nil store passed to NewFilmHandler")
	}
	return &FilmHandler{Store: store, Log: log}
}

// List handles GET /api/films. type selects the filter column and must be
// title, actor or genre (case-insensitive, default title); an empty q
// returns the whole catalog within pagination.
func (h *FilmHandler) List(c echo.Context) error {
	searchType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if searchType == "" {
		searchType = "title"
	}
	switch searchType {
	case "title", "actor", "genre":
	default:
		return errJSON(c, http.StatusBadRequest, KindValidation, "type must be title|actor|genre")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	page, limit := pageParams(c)

	items, total, err := h.Store.Search(c.Request().Context(), repository.FilmSearchQuery{
		Q:     q,
		Type:  searchType,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("film search failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}

	return c.JSON(http.StatusOK, listResponse{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages(total, limit),
		Items: items,
	})
}

// Detail handles GET /api/film/:id.
func (h *FilmHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid film id")
	}
	film, err := h.Store.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrFilmNotFound) {
		return errJSON(c, http.StatusNotFound, KindNotFound, "film not found")
	}
	if err != nil {
		h.Log.Error().Err(err).Uint64("film_id", id).Msg("film detail failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}
	return c.JSON(http.StatusOK, film)
}

// TopRented handles GET /api/films/top-rented.
func (h *FilmHandler) TopRented(c echo.Context) error {
	items, err := h.Store.TopRented(c.Request().Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("top rented films failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}
	return c.JSON(http.StatusOK, items)
}
