package ledger

import (
	"slices"
	"time"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction is one customer ledger entry as stored by the data service.
// Amount is never negative; Type alone decides the effect on the balance.
type Transaction struct {
	ID          string                `json:"id"`
	Date        time.Time             `json:"date" validate:"required"`
	Type        types.TransactionType `json:"type" validate:"required"`
	Amount      decimal.Decimal       `json:"amount"`
	Description string                `json:"description,omitempty"`
	Reference   string                `json:"reference,omitempty"`
	// CreatedAt breaks ties between entries sharing a Date
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Validate enforces the calculator's preconditions for a single entry
func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return ierr.NewError("negative transaction amount").
			WithHint("Transaction amounts must not be negative; use the credit type instead").
			WithReportableDetails(map[string]any{
				"transaction_id": t.ID,
				"amount":         t.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateTransactions checks every entry before any balance is folded
func ValidateTransactions(txs []Transaction) error {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return ierr.WithError(err).
				WithMessagef("transaction at index %d", i).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// Order returns a new slice sorted by Date, then CreatedAt.
// Entries equal on both keys keep the caller's order. txs is not modified.
func Order(txs []Transaction) []Transaction {
	ordered := slices.Clone(txs)
	slices.SortStableFunc(ordered, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return ordered
}
