package types

import (
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/samber/lo"
)

// DocumentType is the kind of financial document the engine produces
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeLedger  DocumentType = "ledger"
	DocumentTypeReport  DocumentType = "report"
)

func (t DocumentType) String() string {
	return string(t)
}

func (t DocumentType) Validate() error {
	allowed := []DocumentType{
		DocumentTypeInvoice,
		DocumentTypeLedger,
		DocumentTypeReport,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid document type").
			WithHint("Please provide a valid document type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
