package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomerNormalize_TrimsAndDefaults(t *testing.T) {
	n := NewCustomer{
		FirstName: " Ana ",
		LastName:  "Lee\t",
		Email:     " a@b.com ",
		Address:   " 1 Main ",
		City:      " Reno ",
		Country:   " USA ",
	}
	n.Normalize()

	assert.Equal(t, "Ana", n.FirstName)
	assert.Equal(t, "Lee", n.LastName)
	assert.Equal(t, "a@b.com", n.Email)
	assert.Equal(t, "1 Main", n.Address)
	assert.Equal(t, "Reno", n.City)
	assert.Equal(t, "USA", n.Country)
	assert.Equal(t, "N/A", n.District)
	assert.Equal(t, "N/A", n.Phone)
	assert.Empty(t, n.PostalCode)
}

func TestNewCustomerNormalize_AliasKeys(t *testing.T) {
	n := NewCustomer{CityName: " Reno ", CountryName: " USA "}
	n.Normalize()

	assert.Equal(t, "Reno", n.City)
	assert.Equal(t, "USA", n.Country)
}

func TestNewCustomerNormalize_CanonicalKeysWin(t *testing.T) {
	n := NewCustomer{City: "Reno", CityName: "Sparks", Country: "USA", CountryName: "Canada"}
	n.Normalize()

	assert.Equal(t, "Reno", n.City)
	assert.Equal(t, "USA", n.Country)
}

func TestNewCustomerNormalize_WhitespaceOnlyStaysEmpty(t *testing.T) {
	n := NewCustomer{City: "  "}
	n.Normalize()

	// A whitespace-only city must fail the later presence check.
	assert.Empty(t, n.City)
}
