package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmstore/sakila-api/internal/repository"
)

type fakeFilmStore struct {
	query     repository.FilmSearchQuery
	rows      []repository.FilmRow
	total     int64
	searchErr error

	detail    *repository.FilmDetail
	detailErr error

	top    []repository.TopFilmRow
	topErr error
}

func (f *fakeFilmStore) Search(_ context.Context, q repository.FilmSearchQuery) ([]repository.FilmRow, int64, error) {
	f.query = q
	return f.rows, f.total, f.searchErr
}

func (f *fakeFilmStore) GetByID(_ context.Context, id uint64) (*repository.FilmDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeFilmStore) TopRented(_ context.Context) ([]repository.TopFilmRow, error) {
	return f.top, f.topErr
}

func TestFilmList_InvalidType(t *testing.T) {
	h := NewFilmHandler(&fakeFilmStore{}, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/films?type=director&q=x", "")

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"kind":"validation","message":"type must be title|actor|genre"}}`, rec.Body.String())
}

func TestFilmList_TypeIsCaseInsensitive(t *testing.T) {
	store := &fakeFilmStore{rows: []repository.FilmRow{}}
	h := NewFilmHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/films?type=GENRE&q=Comedy", "")

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "genre", store.query.Type)
	assert.Equal(t, "Comedy", store.query.Q)
}

func TestFilmList_DefaultsToTitle(t *testing.T) {
	store := &fakeFilmStore{rows: []repository.FilmRow{}}
	h := NewFilmHandler(store, zerolog.Nop())
	c, _ := jsonContext(http.MethodGet, "/api/films?q=ACADEMY", "")

	require.NoError(t, h.List(c))

	assert.Equal(t, "title", store.query.Type)
	assert.Equal(t, 1, store.query.Page)
	assert.Equal(t, 20, store.query.Limit)
}

func TestFilmList_Envelope(t *testing.T) {
	store := &fakeFilmStore{
		rows:  []repository.FilmRow{{FilmID: 1, Title: "ACADEMY DINOSAUR"}},
		total: 101,
	}
	h := NewFilmHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/films?page=3&limit=25", "")

	require.NoError(t, h.List(c))

	var body struct {
		Page  int             `json:"page"`
		Limit int             `json:"limit"`
		Total int64           `json:"total"`
		Pages int64           `json:"pages"`
		Items json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Page)
	assert.Equal(t, 25, body.Limit)
	assert.Equal(t, int64(101), body.Total)
	assert.Equal(t, int64(5), body.Pages)
}

func TestFilmDetail_NotFound(t *testing.T) {
	store := &fakeFilmStore{detailErr: repository.ErrFilmNotFound}
	h := NewFilmHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/film/9999", "")
	c.SetParamNames("id")
	c.SetParamValues("9999")

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"not_found"`)
}

func TestFilmDetail_InvalidID(t *testing.T) {
	h := NewFilmHandler(&fakeFilmStore{}, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/film/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilmDetail_Success(t *testing.T) {
	category := "Comedy, Drama"
	store := &fakeFilmStore{detail: &repository.FilmDetail{
		FilmID:      19,
		Title:       "AMADEUS HOLY",
		RentalCount: 21,
		Category:    &category,
	}}
	h := NewFilmHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/film/19", "")
	c.SetParamNames("id")
	c.SetParamValues("19")

	require.NoError(t, h.Detail(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rental_count":21`)
	assert.Contains(t, rec.Body.String(), `"category":"Comedy, Drama"`)
}

func TestFilmTopRented(t *testing.T) {
	store := &fakeFilmStore{top: []repository.TopFilmRow{
		{FilmID: 103, Title: "BUCKET BROTHERHOOD", Category: "Travel", RentalCount: 34},
	}}
	h := NewFilmHandler(store, zerolog.Nop())
	c, rec := jsonContext(http.MethodGet, "/api/films/top-rented", "")

	require.NoError(t, h.TopRented(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rental_count":34`)
}
