package repository

import (
	"context"
	"database/sql"
	"errors"
)

// LocationRepo resolves the country -> city -> address dimension cascade.
// Every method runs on the caller's transaction so that a failed customer
// insert rolls back any dimension rows created on the way. Callers must
// treat the resolve methods as write-capable even though they read first.
type LocationRepo struct {
	db *sql.DB
}

// NewLocationRepo returns a LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// AddressRecord carries the fields of a new address row. PostalCode is a
// pointer so an absent value is stored as NULL rather than an empty string.
type AddressRecord struct {
	Address    string
	District   string
	CityID     uint64
	PostalCode *string
	Phone      string
}

// ResolveCountryTx returns the id of the country with the given name,
// inserting it first when missing. A concurrent insert of the same name is
// absorbed by re-selecting after a duplicate-key error, so the method never
// creates a second row for a name that already has one.
func (r *LocationRepo) ResolveCountryTx(ctx context.Context, tx *sql.Tx, name string) (uint64, error) {
	const sel = `SELECT country_id FROM country WHERE country = ?`
	var id uint64
	err := tx.QueryRowContext(ctx, sel, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	const ins = `INSERT INTO country (country, last_update) VALUES (?, NOW())`
	res, err := tx.ExecContext(ctx, ins, name)
	if err != nil {
		if isDuplicate(err) {
			if err2 := tx.QueryRowContext(ctx, sel, name).Scan(&id); err2 == nil {
				return id, nil
			}
		}
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// ResolveCityTx returns the id of the named city within the given country,
// inserting it first when missing. Lookups are scoped by country_id so
// same-named cities in different countries stay distinct.
func (r *LocationRepo) ResolveCityTx(ctx context.Context, tx *sql.Tx, name string, countryID uint64) (uint64, error) {
	const sel = `SELECT city_id FROM city WHERE city = ? AND country_id = ?`
	var id uint64
	err := tx.QueryRowContext(ctx, sel, name, countryID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	const ins = `INSERT INTO city (city, country_id, last_update) VALUES (?, ?, NOW())`
	res, err := tx.ExecContext(ctx, ins, name, countryID)
	if err != nil {
		if isDuplicate(err) {
			if err2 := tx.QueryRowContext(ctx, sel, name, countryID).Scan(&id); err2 == nil {
				return id, nil
			}
		}
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// CreateAddressTx inserts a new address row and returns its generated id.
// The location column is a placeholder point required by the schema.
func (r *LocationRepo) CreateAddressTx(ctx context.Context, tx *sql.Tx, rec AddressRecord) (uint64, error) {
	const ins = `INSERT INTO address (address, district, city_id, postal_code, phone, location, last_update)
	             VALUES (?, ?, ?, ?, ?, POINT(0,0), NOW())`
	var postal any
	if rec.PostalCode != nil {
		postal = *rec.PostalCode
	}
	res, err := tx.ExecContext(ctx, ins, rec.Address, rec.District, rec.CityID, postal, rec.Phone)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
