package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Role     string   `json:"role" validate:"omitempty,oneof=member admin"`
	Min      *float64 `json:"salary_min"`
	Max      *float64 `json:"salary_max" validate:"omitempty,gtefield=Min"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()
	low, high := 10.0, 5.0
	err := v.Validate(&signup{Email: "nope", Password: "short", Role: "owner", Min: &low, Max: &high})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Enter a valid email address", fields["email"])
	assert.Equal(t, "Ensure this field has at least 8 characters", fields["password"])
	assert.Equal(t, "Must be one of: member admin", fields["role"])
	assert.Contains(t, fields, "salary_max")
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&signup{Email: "ada@example.com", Password: "long-enough"}))
}
