package types

import (
	"testing"
	"time"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValidate(t *testing.T) {
	tests := []struct {
		name    string
		typ     TransactionType
		wantErr bool
	}{
		{name: "debit", typ: TransactionTypeDebit},
		{name: "credit", typ: TransactionTypeCredit},
		{name: "empty", typ: "", wantErr: true},
		{name: "unknown", typ: "refund", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDateRange(t *testing.T) {
	from := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	r := DateRange{From: from, To: to}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "01 Apr 2024 - 31 Mar 2025", r.String())

	inverted := DateRange{From: to, To: from}
	assert.True(t, ierr.IsValidation(inverted.Validate()))
}

func TestFormatDateZero(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
}

func TestGetCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₹", GetCurrencySymbol("INR"))
	assert.Equal(t, "$", GetCurrencySymbol("usd"))
	assert.Equal(t, "XOF", GetCurrencySymbol("xof"))
}

func TestDocumentTypeValidate(t *testing.T) {
	assert.NoError(t, DocumentTypeLedger.Validate())
	assert.True(t, ierr.IsValidation(DocumentType("receipt").Validate()))
}
