package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/filmstore/sakila-api/internal/repository"
)

// ActorStore is the slice of the repository the actor handlers need.
type ActorStore interface {
	TopRented(ctx context.Context) ([]repository.TopActorRow, error)
	GetByID(ctx context.Context, id uint64) (*repository.ActorDetail, error)
	TopFilms(ctx context.Context, id uint64) ([]repository.ActorFilmRow, error)
}

// ActorHandler serves the /api/top-actors and /api/actor endpoints.
type ActorHandler struct {
	Store ActorStore
	Log   zerolog.Logger
}

// NewActorHandler constructs an ActorHandler with a non-nil store.
func NewActorHandler(store ActorStore, log zerolog.Logger) *ActorHandler {
	if store == nil {
		panic("nil store passed to NewActorHandler")
	}
	return &ActorHandler{Store: store, Log: log}
}

// TopRented handles GET /api/top-actors.
func (h *ActorHandler) TopRented(c echo.Context) error {
	items, err := h.Store.TopRented(c.Request().Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("top actors failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}
	return c.JSON(http.StatusOK, items)
}

// Detail handles GET /api/actor/:id.
func (h *ActorHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid actor id")
	}
	actor, err := h.Store.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrActorNotFound) {
		return errJSON(c, http.StatusNotFound, KindNotFound, "actor not found")
	}
	if err != nil {
		h.Log.Error().Err(err).Uint64("actor_id", id).Msg("actor detail failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}
	return c.JSON(http.StatusOK, actor)
}

// TopFilms handles GET /api/actor/:id/top-films. An unknown actor yields
// an empty list rather than a 404.
func (h *ActorHandler) TopFilms(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid actor id")
	}
	items, err := h.Store.TopFilms(c.Request().Context(), id)
	if err != nil {
		h.Log.Error().Err(err).Uint64("actor_id", id).Msg("actor top films failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}
	return c.JSON(http.StatusOK, items)
}
