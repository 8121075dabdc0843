package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// CustomerRepo provides search and CRUD access to customers. The create
// and update paths run as single transactions; search issues the usual
// count + data query pair.
type CustomerRepo struct {
	db        *sql.DB
	locations *LocationRepo
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB, locations *LocationRepo) *CustomerRepo {
	return &CustomerRepo{db: db, locations: locations}
}

// CustomerRow is one item of the customer listing. Address columns come
// from LEFT JOINs and may be NULL for rows with dangling references.
type CustomerRow struct {
	CustomerID uint64    `json:"customer_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      *string   `json:"email"`
	Active     int       `json:"active"`
	CreateDate time.Time `json:"create_date"`
	StoreID    uint64    `json:"store_id"`
	Address    *string   `json:"address"`
	District   *string   `json:"district"`
	Phone      *string   `json:"phone"`
	PostalCode *string   `json:"postal_code"`
	City       *string   `json:"city"`
	Country    *string   `json:"country"`
}

// customerWhere builds the WHERE clause for the customer search. A purely
// numeric query matches customer ids by prefix; anything else matches the
// concatenated full name by substring. Exactly one mode is active per call,
// and an empty query degrades to a match-all name filter.
func customerWhere(q string) (string, []any) {
	if _, err := strconv.Atoi(q); err == nil && q != "" {
		return `WHERE c.customer_id LIKE ?`, []any{q + "%"}
	}
	return `WHERE CONCAT(c.first_name, ' ', c.last_name) LIKE ?`, []any{"%" + q + "%"}
}

// Search returns one page of customers matching q along with the total
// match count. Page and limit are assumed to be clamped by the caller.
func (r *CustomerRepo) Search(ctx context.Context, q string, page, limit int) ([]CustomerRow, int64, error) {
	where, args := customerWhere(q)

	var total int64
	countSQL := `SELECT COUNT(*) FROM customer c ` + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	dataSQL := `SELECT
			c.customer_id,
			c.first_name,
			c.last_name,
			c.email,
			c.active,
			c.create_date,
			c.store_id,
			a.address,
			a.district,
			a.phone,
			a.postal_code,
			ci.city,
			co.country
		FROM customer c
		LEFT JOIN address a ON a.address_id = c.address_id
		LEFT JOIN city ci ON ci.city_id = a.city_id
		LEFT JOIN country co ON co.country_id = ci.country_id
		` + where + `
		ORDER BY c.first_name ASC, c.last_name ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]CustomerRow, 0, limit)
	for rows.Next() {
		var d CustomerRow
		var email, address, district, phone, postal, city, country sql.NullString
		if err := rows.Scan(
			&d.CustomerID,
			&d.FirstName,
			&d.LastName,
			&email,
			&d.Active,
			&d.CreateDate,
			&d.StoreID,
			&address,
			&district,
			&phone,
			&postal,
			&city,
			&country,
		); err != nil {
			return nil, 0, err
		}
		d.Email = nullable(email)
		d.Address = nullable(address)
		d.District = nullable(district)
		d.Phone = nullable(phone)
		d.PostalCode = nullable(postal)
		d.City = nullable(city)
		d.Country = nullable(country)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// NewCustomerRecord carries the validated fields of a customer creation.
// City and Country are display names resolved inside the transaction.
type NewCustomerRecord struct {
	StoreID    int
	FirstName  string
	LastName   string
	Email      string
	Address    string
	District   string
	Phone      string
	PostalCode *string
	City       string
	Country    string
}

// CreatedCustomer reports the keys produced by a successful creation.
type CreatedCustomer struct {
	CustomerID uint64 `json:"customer_id"`
	AddressID  uint64 `json:"address_id"`
	CityID     uint64 `json:"city_id"`
	CountryID  uint64 `json:"country_id"`
}

// Create persists a customer and its address in one transaction, resolving
// or creating the country and city rows on the way. Any failure rolls back
// the whole cascade, so no partial dimension rows survive a failed insert.
func (r *CustomerRepo) Create(ctx context.Context, rec NewCustomerRecord) (CreatedCustomer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return CreatedCustomer{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	countryID, err := r.locations.ResolveCountryTx(ctx, tx, rec.Country)
	if err != nil {
		return CreatedCustomer{}, err
	}
	cityID, err := r.locations.ResolveCityTx(ctx, tx, rec.City, countryID)
	if err != nil {
		return CreatedCustomer{}, err
	}
	addressID, err := r.locations.CreateAddressTx(ctx, tx, AddressRecord{
		Address:    rec.Address,
		District:   rec.District,
		CityID:     cityID,
		PostalCode: rec.PostalCode,
		Phone:      rec.Phone,
	})
	if err != nil {
		return CreatedCustomer{}, err
	}

	const ins = `INSERT INTO customer (store_id, first_name, last_name, email, address_id, active, create_date, last_update)
	             VALUES (?, ?, ?, ?, ?, 1, NOW(), NOW())`
	res, err := tx.ExecContext(ctx, ins, rec.StoreID, rec.FirstName, rec.LastName, rec.Email, addressID)
	if err != nil {
		return CreatedCustomer{}, err
	}
	customerID, err := res.LastInsertId()
	if err != nil {
		return CreatedCustomer{}, err
	}

	if err := tx.Commit(); err != nil {
		return CreatedCustomer{}, err
	}
	committed = true

	return CreatedCustomer{
		CustomerID: uint64(customerID),
		AddressID:  addressID,
		CityID:     cityID,
		CountryID:  countryID,
	}, nil
}

// UpdateCustomerRecord carries the fields of a customer update. The
// address fields are written to the customer's linked address row.
type UpdateCustomerRecord struct {
	FirstName  string
	LastName   string
	Email      string
	StoreID    int
	Address    string
	District   string
	Phone      string
	PostalCode *string
}

// Update rewrites the customer row and its address row in one transaction.
// It returns ErrCustomerNotFound when the id matches no customer.
func (r *CustomerRepo) Update(ctx context.Context, id uint64, rec UpdateCustomerRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upCustomer = `UPDATE customer
		SET first_name = ?, last_name = ?, email = ?, store_id = ?
		WHERE customer_id = ?`
	if _, err := tx.ExecContext(ctx, upCustomer, rec.FirstName, rec.LastName, rec.Email, rec.StoreID, id); err != nil {
		return err
	}

	var addressID uint64
	err = tx.QueryRowContext(ctx, `SELECT address_id FROM customer WHERE customer_id = ?`, id).Scan(&addressID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCustomerNotFound
	}
	if err != nil {
		return err
	}

	var postal any
	if rec.PostalCode != nil {
		postal = *rec.PostalCode
	}
	const upAddress = `UPDATE address
		SET phone = ?, district = ?, postal_code = ?, address = ?
		WHERE address_id = ?`
	if _, err := tx.ExecContext(ctx, upAddress, rec.Phone, rec.District, postal, rec.Address, addressID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a customer row. Deleting an id that does not exist is not
// an error; the address row is intentionally left behind.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customer WHERE customer_id = ?`, id)
	return err
}
