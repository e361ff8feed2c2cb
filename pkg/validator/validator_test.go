package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&sample{})
	require.Len(t, errs, 1)
	assert.Equal(t, "sample.Name", errs[0].FailedField)
	assert.Equal(t, "required", errs[0].Tag)

	assert.Empty(t, ValidateStruct(&sample{Name: "ok"}))
}

func TestValidateReportsFirstFailure(t *testing.T) {
	err := Validate(&sample{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample.Name")

	assert.NoError(t, Validate(&sample{Name: "ok", Email: "ok@example.com"}))
}
