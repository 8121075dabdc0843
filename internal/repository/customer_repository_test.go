package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerWhere_NumericQueryMatchesIDPrefix(t *testing.T) {
	where, args := customerWhere("7")

	assert.Equal(t, `WHERE c.customer_id LIKE ?`, where)
	assert.Equal(t, []any{"7%"}, args)
}

func TestCustomerWhere_NameQueryMatchesSubstring(t *testing.T) {
	where, args := customerWhere("Ana Lee")

	assert.Equal(t, `WHERE CONCAT(c.first_name, ' ', c.last_name) LIKE ?`, where)
	assert.Equal(t, []any{"%Ana Lee%"}, args)
}

func TestCustomerWhere_EmptyQueryMatchesAllNames(t *testing.T) {
	where, args := customerWhere("")

	// An empty query degrades to a match-all substring filter on the name.
	assert.Equal(t, `WHERE CONCAT(c.first_name, ' ', c.last_name) LIKE ?`, where)
	assert.Equal(t, []any{"%%"}, args)
}

func TestCustomerWhere_MixedQueryIsNotNumeric(t *testing.T) {
	where, args := customerWhere("7th Street")

	assert.Contains(t, where, "CONCAT")
	assert.Equal(t, []any{"%7th Street%"}, args)
}

func TestIsDuplicate(t *testing.T) {
	assert.False(t, isDuplicate(nil))
	assert.False(t, isDuplicate(assert.AnError))
	assert.True(t, isDuplicate(errDup{}))
}

type errDup struct{}

func (errDup) Error() string {
	return "Error 1062 (23000): Duplicate entry 'USA' for key 'country.country'"
}
