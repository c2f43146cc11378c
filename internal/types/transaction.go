package types

import (
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/samber/lo"
)

// TransactionType is the accounting side of a ledger entry.
// A debit increases what the counterparty owes the issuer, a credit decreases it.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) Validate() error {
	allowed := []TransactionType{
		TransactionTypeDebit,
		TransactionTypeCredit,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid transaction type").
			WithHint("Transaction type must be debit or credit").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
				"type":    t,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BalanceSide is the display suffix of a signed balance
type BalanceSide string

const (
	// BalanceSideDebit means the counterparty owes the issuer
	BalanceSideDebit BalanceSide = "Dr"
	// BalanceSideCredit means the issuer owes the counterparty
	BalanceSideCredit BalanceSide = "Cr"
)
