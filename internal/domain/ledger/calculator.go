package ledger

import (
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/shopspring/decimal"
)

// Balance is a signed account balance. Positive means the counterparty owes
// the issuer (Dr), negative means the issuer owes the counterparty (Cr).
type Balance struct {
	Amount decimal.Decimal
}

// Side returns Dr for zero and positive balances and Cr otherwise
func (b Balance) Side() types.BalanceSide {
	if b.Amount.IsNegative() {
		return types.BalanceSideCredit
	}
	return types.BalanceSideDebit
}

// Abs is the magnitude printed next to the side label
func (b Balance) Abs() decimal.Decimal {
	return b.Amount.Abs()
}

// Statement is the result of folding transactions over an opening balance.
// Entries[i] is the balance right after transactions[i].
type Statement struct {
	Opening      decimal.Decimal
	Entries      []Balance
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Closing      decimal.Decimal

	transactions []Transaction
}

// ComputeRunning folds txs left to right in the order given.
// The input slice is not modified and is not re-sorted.
func ComputeRunning(opening decimal.Decimal, txs []Transaction) *Statement {
	s := &Statement{
		Opening:      opening,
		Entries:      make([]Balance, 0, len(txs)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		transactions: txs,
	}

	balance := opening
	for _, tx := range txs {
		switch tx.Type {
		case types.TransactionTypeDebit:
			balance = balance.Add(tx.Amount)
			s.TotalDebits = s.TotalDebits.Add(tx.Amount)
		default:
			balance = balance.Sub(tx.Amount)
			s.TotalCredits = s.TotalCredits.Add(tx.Amount)
		}
		s.Entries = append(s.Entries, Balance{Amount: balance})
	}

	s.Closing = balance
	return s
}

// ClosingBalance returns the closing amount wrapped for display
func (s *Statement) ClosingBalance() Balance {
	return Balance{Amount: s.Closing}
}

// OpeningBalance returns the opening amount wrapped for display
func (s *Statement) OpeningBalance() Balance {
	return Balance{Amount: s.Opening}
}

// Reconcile re-derives every running balance from the opening balance and
// the separately accumulated debit and credit sums, then checks the totals row.
func (s *Statement) Reconcile() error {
	if len(s.Entries) != len(s.transactions) {
		return ierr.NewErrorf("statement has %d balances for %d transactions", len(s.Entries), len(s.transactions)).
			WithHint("Failed to reconcile ledger balances").
			Mark(ierr.ErrSystem)
	}

	debits, credits := decimal.Zero, decimal.Zero
	for i, tx := range s.transactions {
		if tx.Type == types.TransactionTypeDebit {
			debits = debits.Add(tx.Amount)
		} else {
			credits = credits.Add(tx.Amount)
		}

		want := Close(s.Opening, debits, credits)
		if !s.Entries[i].Amount.Equal(want) {
			return ierr.NewErrorf("running balance mismatch at row %d: got %s, want %s", i, s.Entries[i].Amount, want).
				WithHint("Failed to reconcile ledger balances").
				Mark(ierr.ErrSystem)
		}
	}

	if !debits.Equal(s.TotalDebits) || !credits.Equal(s.TotalCredits) {
		return ierr.NewErrorf("totals mismatch: debits %s/%s credits %s/%s", s.TotalDebits, debits, s.TotalCredits, credits).
			WithHint("Failed to reconcile ledger balances").
			Mark(ierr.ErrSystem)
	}

	if !s.Closing.Equal(Close(s.Opening, s.TotalDebits, s.TotalCredits)) {
		return ierr.NewErrorf("closing balance %s does not equal opening %s + debits %s - credits %s",
			s.Closing, s.Opening, s.TotalDebits, s.TotalCredits).
			WithHint("Failed to reconcile ledger balances").
			Mark(ierr.ErrSystem)
	}

	return nil
}

// Close applies the sign convention: opening + debits - credits
func Close(opening, debits, credits decimal.Decimal) decimal.Decimal {
	return opening.Add(debits).Sub(credits)
}
