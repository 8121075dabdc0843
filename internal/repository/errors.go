// Package repository implements the SQL data access layer over the Sakila
// schema. Sentinel errors defined here let handlers map failure modes to
// HTTP statuses without inspecting driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrCustomerNotFound is returned when a customer id matches no row.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrFilmNotFound is returned when a film id matches no row.
var ErrFilmNotFound = errors.New("film not found")

// ErrActorNotFound is returned when an actor id matches no row.
var ErrActorNotFound = errors.New("actor not found")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). The lookup-or-create path relies on this to stay
// idempotent when two requests insert the same dimension row at once.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
