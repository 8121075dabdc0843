package repository

import (
	"context"
	"database/sql"
	"errors"
)

// FilmRepo provides the paginated catalog search and the read-only rental
// aggregations for films.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo returns a FilmRepo bound to the given database.
func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

// FilmSearchQuery defines the filter and pagination of a catalog search.
// Type must be one of "title", "actor" or "genre" (validated by the
// handler); an empty Q disables filtering entirely.
type FilmSearchQuery struct {
	Q     string
	Type  string
	Page  int
	Limit int
}

// FilmRow is one item of the film listing. The genres and actors columns
// are comma-joined aggregates and are independent of the active filter.
type FilmRow struct {
	FilmID          uint64  `json:"film_id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	ReleaseYear     *int    `json:"release_year"`
	SpecialFeatures *string `json:"special_features"`
	RentalRate      float64 `json:"rental_rate"`
	Rating          *string `json:"rating"`
	Genres          *string `json:"genres"`
	Actors          *string `json:"actors"`
}

// filmWhere builds the WHERE clause for a film search. Actor and genre
// filters use EXISTS subqueries against the join tables so a film with
// several matching actors or categories still appears exactly once.
func filmWhere(searchType, q string) (string, []any) {
	if q == "" {
		return "", nil
	}
	like := "%" + q + "%"
	switch searchType {
	case "actor":
		return `WHERE EXISTS (
			SELECT 1
			FROM film_actor fa2
			JOIN actor a2 ON a2.actor_id = fa2.actor_id
			WHERE fa2.film_id = f.film_id
			  AND CONCAT(a2.first_name, ' ', a2.last_name) LIKE ?
		)`, []any{like}
	case "genre":
		return `WHERE EXISTS (
			SELECT 1
			FROM film_category fc2
			JOIN category c2 ON c2.category_id = fc2.category_id
			WHERE fc2.film_id = f.film_id
			  AND c2.name LIKE ?
		)`, []any{like}
	default: // title
		return `WHERE f.title LIKE ?`, []any{like}
	}
}

// Search returns one page of films matching the query along with the total
// match count. Ordering is (title, film_id) so pagination stays stable
// when titles tie.
func (r *FilmRepo) Search(ctx context.Context, q FilmSearchQuery) ([]FilmRow, int64, error) {
	where, args := filmWhere(q.Type, q.Q)

	var total int64
	countSQL := `SELECT COUNT(*) FROM film f ` + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	dataSQL := `SELECT
			f.film_id,
			f.title,
			f.description,
			f.release_year,
			f.special_features,
			f.rental_rate,
			f.rating,
			GROUP_CONCAT(DISTINCT c.name ORDER BY c.name SEPARATOR ', ') AS genres,
			GROUP_CONCAT(
				DISTINCT CONCAT(a.first_name, ' ', a.last_name)
				ORDER BY a.last_name, a.first_name
				SEPARATOR ', '
			) AS actors
		FROM film f
		LEFT JOIN film_category fc ON fc.film_id = f.film_id
		LEFT JOIN category c ON c.category_id = fc.category_id
		LEFT JOIN film_actor fa ON fa.film_id = f.film_id
		LEFT JOIN actor a ON a.actor_id = fa.actor_id
		` + where + `
		GROUP BY
			f.film_id, f.title, f.description, f.release_year,
			f.special_features, f.rental_rate, f.rating
		ORDER BY f.title ASC, f.film_id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), q.Limit, offset)
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]FilmRow, 0, q.Limit)
	for rows.Next() {
		var d FilmRow
		var description, features, rating, genres, actors sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(
			&d.FilmID,
			&d.Title,
			&description,
			&year,
			&features,
			&d.RentalRate,
			&rating,
			&genres,
			&actors,
		); err != nil {
			return nil, 0, err
		}
		d.Description = nullable(description)
		if year.Valid {
			y := int(year.Int64)
			d.ReleaseYear = &y
		}
		d.SpecialFeatures = nullable(features)
		d.Rating = nullable(rating)
		d.Genres = nullable(genres)
		d.Actors = nullable(actors)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FilmDetail is the single-film aggregate view. Categories are collapsed
// into one comma-joined column; the rental count is distinct so the
// category fan-out cannot inflate it.
type FilmDetail struct {
	FilmID      uint64  `json:"film_id"`
	Title       string  `json:"title"`
	ReleaseYear *int    `json:"release_year"`
	Description *string `json:"description"`
	RentalRate  float64 `json:"rental_rate"`
	Rating      *string `json:"rating"`
	Category    *string `json:"category"`
	RentalCount int64   `json:"rental_count"`
}

// GetByID returns the aggregate detail of one film. Films that were never
// rented have no rental rows to join and report ErrFilmNotFound, matching
// the catalog this API fronts.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (*FilmDetail, error) {
	const q = `SELECT
			f.film_id,
			f.title,
			f.release_year,
			f.description,
			f.rental_rate,
			f.rating,
			GROUP_CONCAT(DISTINCT c.name ORDER BY c.name SEPARATOR ', ') AS category,
			COUNT(DISTINCT r.rental_id) AS rental_count
		FROM film f
		JOIN inventory i ON i.film_id = f.film_id
		JOIN rental r ON r.inventory_id = i.inventory_id
		JOIN film_category fc ON fc.film_id = f.film_id
		JOIN category c ON c.category_id = fc.category_id
		WHERE f.film_id = ?
		GROUP BY f.film_id, f.title, f.release_year, f.description, f.rental_rate, f.rating`

	var d FilmDetail
	var description, rating, category sql.NullString
	var year sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.FilmID,
		&d.Title,
		&year,
		&description,
		&d.RentalRate,
		&rating,
		&category,
		&d.RentalCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFilmNotFound
	}
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		d.ReleaseYear = &y
	}
	d.Description = nullable(description)
	d.Rating = nullable(rating)
	d.Category = nullable(category)
	return &d, nil
}

// TopFilmRow is one entry of the most-rented ranking. A film appears once
// per category, like the report it replaces.
type TopFilmRow struct {
	FilmID      uint64 `json:"film_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	RentalCount int64  `json:"rental_count"`
}

// TopRented returns the five most-rented films with their categories.
func (r *FilmRepo) TopRented(ctx context.Context) ([]TopFilmRow, error) {
	const q = `SELECT
			f.film_id,
			f.title,
			c.name AS category,
			COUNT(DISTINCT r.rental_id) AS rental_count
		FROM film f
		JOIN inventory i ON i.film_id = f.film_id
		JOIN rental r ON r.inventory_id = i.inventory_id
		JOIN film_category fc ON fc.film_id = f.film_id
		JOIN category c ON c.category_id = fc.category_id
		GROUP BY f.film_id, f.title, c.name
		ORDER BY rental_count DESC
		LIMIT 5`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopFilmRow, 0, 5)
	for rows.Next() {
		var d TopFilmRow
		if err := rows.Scan(&d.FilmID, &d.Title, &d.Category, &d.RentalCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
