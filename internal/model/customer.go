// Package model defines the request bodies accepted by the API. Fields
// carry validator tags; presence is the only rule enforced, matching the
// behaviour of the store the API fronts.
package model

import "strings"

// NewCustomer is the POST /api/customers payload. The city and country are
// free-text names resolved (or created) inside the write transaction.
// city_name / country_name are accepted as aliases for city / country.
type NewCustomer struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
	District    string `json:"district"`
	Phone       string `json:"phone"`
	PostalCode  string `json:"postal_code"`
	StoreID     *int   `json:"store_id" validate:"required"`
	CityName    string `json:"city_name" validate:"-"`
	CountryName string `json:"country_name" validate:"-"`
}

// Normalize trims every string field, folds the alias keys into their
// canonical fields and applies the placeholder defaults for district and
// phone. It must run before validation.
func (n *NewCustomer) Normalize() {
	n.FirstName = strings.TrimSpace(n.FirstName)
	n.LastName = strings.TrimSpace(n.LastName)
	n.Email = strings.TrimSpace(n.Email)
	n.Address = strings.TrimSpace(n.Address)
	n.City = strings.TrimSpace(n.City)
	n.Country = strings.TrimSpace(n.Country)
	n.District = strings.TrimSpace(n.District)
	n.Phone = strings.TrimSpace(n.Phone)
	n.PostalCode = strings.TrimSpace(n.PostalCode)

	if n.City == "" {
		n.City = strings.TrimSpace(n.CityName)
	}
	if n.Country == "" {
		n.Country = strings.TrimSpace(n.CountryName)
	}
	if n.District == "" {
		n.District = "N/A"
	}
	if n.Phone == "" {
		n.Phone = "N/A"
	}
}

// UpdateCustomer is the PUT /api/customers/:id payload. It updates the
// customer row and the linked address row together.
type UpdateCustomer struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	StoreID    *int   `json:"store_id" validate:"required"`
	Address    string `json:"address"`
	District   string `json:"district"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`
}

// Normalize trims the string fields of an update payload.
func (u *UpdateCustomer) Normalize() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)
	u.Address = strings.TrimSpace(u.Address)
	u.District = strings.TrimSpace(u.District)
	u.Phone = strings.TrimSpace(u.Phone)
	u.PostalCode = strings.TrimSpace(u.PostalCode)
}
