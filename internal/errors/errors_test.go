package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestBuilderMarksSentinel(t *testing.T) {
	err := NewError("missing invoice number").
		WithHint("Invoice number is required").
		Mark(ErrValidation)

	assert.True(t, IsValidation(err))
	assert.False(t, IsSystem(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromErr(err))
	assert.Contains(t, errors.GetAllHints(err), "Invoice number is required")
}

func TestWithErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := WithError(cause).
		WithMessagef("writing %s", "ledger.pdf").
		Mark(ErrSystem)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsSystem(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErr(err))
}

func TestHTTPStatusFromUnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErr(errors.New("boom")))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(NewErrorf("document %s", "x").Mark(ErrNotFound)))
}
