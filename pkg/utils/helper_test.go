package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

type signup struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=3"`
	Role  string `validate:"omitempty,oneof=customer manager admin"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(signup{Email: "jane@example.com", Name: "Jane"}))

	errs := ValidateStruct(signup{Email: "nope", Name: "Jo", Role: "root"})
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Minimum length is 3", errs["Name"])
	assert.Equal(t, "Must be one of: customer, manager, admin", errs["Role"])

	assert.Equal(t,
		"Email: Invalid email format; Name: Minimum length is 3; Role: Must be one of: customer, manager, admin",
		FormatValidationErrors(errs),
	)
}
