package validator

import (
	"testing"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string   `validate:"required"`
	Items []string `validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Name: "INV-1", Items: []string{"a"}}))

	err := ValidateRequest(sample{})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestGetValidatorIsShared(t *testing.T) {
	assert.Same(t, GetValidator(), NewValidator())
}
