package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ActorRepo provides the read-only rental aggregations for actors.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo returns an ActorRepo bound to the given database.
func NewActorRepo(db *sql.DB) *ActorRepo { return &ActorRepo{db: db} }

// TopActorRow is one entry of the most-rented actor ranking.
type TopActorRow struct {
	ActorID     uint64 `json:"actor_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	RentalCount int64  `json:"rental_count"`
}

// TopRented returns the five actors whose films were rented the most.
// The fan-out is one row per rental, so a plain COUNT is exact here.
func (r *ActorRepo) TopRented(ctx context.Context) ([]TopActorRow, error) {
	const q = `SELECT
			a.actor_id,
			a.first_name,
			a.last_name,
			COUNT(r.rental_id) AS rental_count
		FROM actor a
		JOIN film_actor fa ON fa.actor_id = a.actor_id
		JOIN inventory i ON i.film_id = fa.film_id
		JOIN rental r ON r.inventory_id = i.inventory_id
		GROUP BY a.actor_id, a.first_name, a.last_name
		ORDER BY rental_count DESC
		LIMIT 5`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopActorRow, 0, 5)
	for rows.Next() {
		var d TopActorRow
		if err := rows.Scan(&d.ActorID, &d.FirstName, &d.LastName, &d.RentalCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ActorDetail is the single-actor aggregate view.
type ActorDetail struct {
	ActorID     uint64 `json:"actor_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	RentalCount int64  `json:"rental_count"`
}

// GetByID returns the aggregate detail of one actor, or ErrActorNotFound
// when the id matches no rented film of any actor.
func (r *ActorRepo) GetByID(ctx context.Context, id uint64) (*ActorDetail, error) {
	const q = `SELECT
			a.actor_id,
			a.first_name,
			a.last_name,
			COUNT(r.rental_id) AS rental_count
		FROM actor a
		JOIN film_actor fa ON fa.actor_id = a.actor_id
		JOIN inventory i ON i.film_id = fa.film_id
		JOIN rental r ON r.inventory_id = i.inventory_id
		WHERE a.actor_id = ?
		GROUP BY a.actor_id, a.first_name, a.last_name`

	var d ActorDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ActorID, &d.FirstName, &d.LastName, &d.RentalCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ActorFilmRow is one entry of an actor's personal film ranking.
type ActorFilmRow struct {
	FilmID      uint64 `json:"film_id"`
	Title       string `json:"title"`
	RentalCount int64  `json:"rental_count"`
}

// TopFilms returns the five most-rented films of one actor. An unknown
// actor simply yields an empty list.
func (r *ActorRepo) TopFilms(ctx context.Context, id uint64) ([]ActorFilmRow, error) {
	const q = `SELECT
			f.film_id,
			f.title,
			COUNT(r.rental_id) AS rental_count
		FROM film_actor fa
		JOIN film f ON f.film_id = fa.film_id
		JOIN inventory i ON i.film_id = f.film_id
		JOIN rental r ON r.inventory_id = i.inventory_id
		WHERE fa.actor_id = ?
		GROUP BY f.film_id, f.title
		ORDER BY rental_count DESC
		LIMIT 5`

	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActorFilmRow, 0, 5)
	for rows.Next() {
		var d ActorFilmRow
		if err := rows.Scan(&d.FilmID, &d.Title, &d.RentalCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
