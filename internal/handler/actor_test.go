package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmstore/sakila-api/internal/repository"
)

type fakeActorStore struct {
	top    []repository.TopActorRow
	topErr error

	detail    *repository.ActorDetail
	detailErr error

	films    []repository.ActorFilmRow
	filmsErr error
}

func (f *fakeActorStore) TopRented(_ context.Context) ([]repository.TopActorRow, error) {
	return f.top, f.topErr
}

func (f *fakeActorStore) GetByID(_ context.Context, id uint64) (*repository.ActorDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeActorStore) TopFilms(_ context.Context, id uint64) ([]repository.ActorFilmRow, error) {
	return f.films, f.filmsErr
}

func TestActorTopRented(t *testing.T) {
	store := &fakeActorStore{top: []repository.TopActorRow{
		{ActorID: 107, FirstName: "GINA", LastName: "DEGENERES", RentalCount: 753},
	}}
	h := NewActorHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/top-actors", "")

	require.NoError(t, h.TopRented(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"actor_id":107`)
}

func TestActorDetail_NotFound(t *testing.T) {
	store := &fakeActorStore{detailErr: repository.ErrActorNotFound}
	h := NewActorHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/actor/9999", "")
	c.SetParamNames("id")
	c.SetParamValues("9999")

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"not_found"`)
}

func TestActorDetail_InvalidID(t *testing.T) {
	h := NewActorHandler(&fakeActorStore{}, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/actor/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActorTopFilms_EmptyList(t *testing.T) {
	store := &fakeActorStore{films: []repository.ActorFilmRow{}}
	h := NewActorHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/actor/42/top-films", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.TopFilms(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestActorTopFilms_StoreError(t *testing.T) {
	store := &fakeActorStore{filmsErr: assert.AnError}
	h := NewActorHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/actor/42/top-films", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.TopFilms(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"internal"`)
}
