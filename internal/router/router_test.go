package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/filmstore/sakila-api/internal/handler"
	"github.com/filmstore/sakila-api/internal/repository"
)

type stubFilmStore struct{}

func (stubFilmStore) Search(context.Context, repository.FilmSearchQuery) ([]repository.FilmRow, int64, error) {
	return []repository.FilmRow{}, 0, nil
}
func (stubFilmStore) GetByID(context.Context, uint64) (*repository.FilmDetail, error) {
	return nil, repository.ErrFilmNotFound
}
func (stubFilmStore) TopRented(context.Context) ([]repository.TopFilmRow, error) {
	return []repository.TopFilmRow{}, nil
}

type stubActorStore struct{}

func (stubActorStore) TopRented(context.Context) ([]repository.TopActorRow, error) {
	return []repository.TopActorRow{}, nil
}
func (stubActorStore) GetByID(context.Context, uint64) (*repository.ActorDetail, error) {
	return nil, repository.ErrActorNotFound
}
func (stubActorStore) TopFilms(context.Context, uint64) ([]repository.ActorFilmRow, error) {
	return []repository.ActorFilmRow{}, nil
}

type stubCustomerStore struct{}

func (stubCustomerStore) Search(context.Context, string, int, int) ([]repository.CustomerRow, int64, error) {
	return []repository.CustomerRow{}, 0, nil
}
func (stubCustomerStore) Create(context.Context, repository.NewCustomerRecord) (repository.CreatedCustomer, error) {
	return repository.CreatedCustomer{}, nil
}
func (stubCustomerStore) Update(context.Context, uint64, repository.UpdateCustomerRecord) error {
	return nil
}
func (stubCustomerStore) Delete(context.Context, uint64) error { return nil }

func newServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.ErrorHandler(zerolog.Nop())
	RegisterRoutes(e,
		handler.NewFilmHandler(stubFilmStore{}, zerolog.Nop()),
		handler.NewActorHandler(stubActorStore{}, zerolog.Nop()),
		handler.NewCustomerHandler(stubCustomerStore{}, nil, zerolog.Nop()),
	)
	return e
}

func TestRoutes_Registered(t *testing.T) {
	e := newServer()
	paths := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/films", http.StatusOK},
		{http.MethodGet, "/api/films/top-rented", http.StatusOK},
		{http.MethodGet, "/api/film/1", http.StatusNotFound},
		{http.MethodGet, "/api/customers", http.StatusOK},
		{http.MethodGet, "/api/top-actors", http.StatusOK},
		{http.MethodGet, "/api/actor/1", http.StatusNotFound},
		{http.MethodGet, "/api/actor/1/top-films", http.StatusOK},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, p.want, rec.Code, "%s %s", p.method, p.target)
	}
}

func TestUnmatchedRoute_SharesEnvelope(t *testing.T) {
	e := newServer()
	req := httptest.NewRequest(http.MethodGet, "/api/rentals", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"not_found"`)
}
