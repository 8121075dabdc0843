package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilmWhere_EmptyQueryDisablesFiltering(t *testing.T) {
	where, args := filmWhere("title", "")

	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestFilmWhere_TitleMatchesSubstring(t *testing.T) {
	where, args := filmWhere("title", "ACADEMY")

	assert.Equal(t, `WHERE f.title LIKE ?`, where)
	assert.Equal(t, []any{"%ACADEMY%"}, args)
}

func TestFilmWhere_ActorUsesExistsSubquery(t *testing.T) {
	where, args := filmWhere("actor", "Nick")

	// EXISTS keeps a film with several matching actors to a single row.
	assert.Contains(t, where, "EXISTS")
	assert.Contains(t, where, "film_actor")
	assert.Contains(t, where, "CONCAT(a2.first_name, ' ', a2.last_name) LIKE ?")
	assert.Equal(t, []any{"%Nick%"}, args)
}

func TestFilmWhere_GenreUsesExistsSubquery(t *testing.T) {
	where, args := filmWhere("genre", "Comedy")

	assert.Contains(t, where, "EXISTS")
	assert.Contains(t, where, "film_category")
	assert.Contains(t, where, "c2.name LIKE ?")
	assert.Equal(t, []any{"%Comedy%"}, args)
}
