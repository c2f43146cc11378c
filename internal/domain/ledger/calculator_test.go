package ledger

import (
	"math/rand"
	"testing"
	"time"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

func tx(typ types.TransactionType, amount string, days int) Transaction {
	return Transaction{
		Date:   day0.AddDate(0, 0, days),
		Type:   typ,
		Amount: decimal.RequireFromString(amount),
	}
}

func amounts(bs []Balance) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Amount.String()
	}
	return out
}

func TestComputeRunning_Example(t *testing.T) {
	txs := []Transaction{
		tx(types.TransactionTypeDebit, "500", 0),
		tx(types.TransactionTypeCredit, "200", 1),
		tx(types.TransactionTypeDebit, "100", 2),
	}

	s := ComputeRunning(decimal.Zero, txs)

	assert.Equal(t, []string{"500", "300", "400"}, amounts(s.Entries))
	assert.True(t, s.TotalDebits.Equal(decimal.NewFromInt(600)))
	assert.True(t, s.TotalCredits.Equal(decimal.NewFromInt(200)))
	assert.True(t, s.Closing.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, types.BalanceSideDebit, s.ClosingBalance().Side())
	require.NoError(t, s.Reconcile())
}

func TestComputeRunning(t *testing.T) {
	tests := []struct {
		name         string
		opening      string
		txs          []Transaction
		wantEntries  []string
		wantClosing  string
		wantSide     types.BalanceSide
		wantAbsolute string
	}{
		{
			name:         "no transactions keeps opening",
			opening:      "125.50",
			wantEntries:  []string{},
			wantClosing:  "125.5",
			wantSide:     types.BalanceSideDebit,
			wantAbsolute: "125.5",
		},
		{
			name:    "credit balance from advance payment",
			opening: "0",
			txs: []Transaction{
				tx(types.TransactionTypeCredit, "1000", 0),
				tx(types.TransactionTypeDebit, "250.25", 3),
			},
			wantEntries:  []string{"-1000", "-749.75"},
			wantClosing:  "-749.75",
			wantSide:     types.BalanceSideCredit,
			wantAbsolute: "749.75",
		},
		{
			name:    "negative opening crosses zero",
			opening: "-50",
			txs: []Transaction{
				tx(types.TransactionTypeDebit, "50", 0),
				tx(types.TransactionTypeDebit, "0.01", 1),
			},
			wantEntries:  []string{"0", "0.01"},
			wantClosing:  "0.01",
			wantSide:     types.BalanceSideDebit,
			wantAbsolute: "0.01",
		},
		{
			name:    "zero amount leaves balance unchanged",
			opening: "10",
			txs: []Transaction{
				tx(types.TransactionTypeCredit, "0", 0),
			},
			wantEntries:  []string{"10"},
			wantClosing:  "10",
			wantSide:     types.BalanceSideDebit,
			wantAbsolute: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeRunning(decimal.RequireFromString(tt.opening), tt.txs)

			assert.Equal(t, tt.wantEntries, amounts(s.Entries))
			assert.True(t, s.Closing.Equal(decimal.RequireFromString(tt.wantClosing)), "closing %s", s.Closing)
			assert.Equal(t, tt.wantSide, s.ClosingBalance().Side())
			assert.True(t, s.ClosingBalance().Abs().Equal(decimal.RequireFromString(tt.wantAbsolute)))
			assert.NoError(t, s.Reconcile())
		})
	}
}

func TestComputeRunning_ClosingMatchesNetForRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		opening := decimal.New(rng.Int63n(2_000_000)-1_000_000, -2)
		n := rng.Intn(60)
		txs := make([]Transaction, n)
		for i := range txs {
			typ := types.TransactionTypeDebit
			if rng.Intn(2) == 0 {
				typ = types.TransactionTypeCredit
			}
			txs[i] = Transaction{
				Date:   day0.AddDate(0, 0, i),
				Type:   typ,
				Amount: decimal.New(rng.Int63n(10_000_000), -2),
			}
		}

		s := ComputeRunning(opening, txs)
		require.Len(t, s.Entries, n)

		balance := opening
		for i, tx := range txs {
			prev := balance
			if tx.Type == types.TransactionTypeDebit {
				balance = balance.Add(tx.Amount)
				assert.True(t, s.Entries[i].Amount.GreaterThanOrEqual(prev))
			} else {
				balance = balance.Sub(tx.Amount)
				assert.True(t, s.Entries[i].Amount.LessThanOrEqual(prev))
			}
			assert.True(t, s.Entries[i].Amount.Equal(balance))
		}

		assert.True(t, s.Closing.Equal(Close(opening, s.TotalDebits, s.TotalCredits)))
		assert.NoError(t, s.Reconcile())
	}
}

func TestComputeRunning_DoesNotMutateInput(t *testing.T) {
	txs := []Transaction{
		tx(types.TransactionTypeCredit, "20", 5),
		tx(types.TransactionTypeDebit, "30", 1),
	}
	before := append([]Transaction(nil), txs...)

	s := ComputeRunning(decimal.Zero, txs)

	assert.Equal(t, before, txs)
	assert.Equal(t, []string{"-20", "10"}, amounts(s.Entries))
}

func TestReconcileDetectsTampering(t *testing.T) {
	s := ComputeRunning(decimal.Zero, []Transaction{
		tx(types.TransactionTypeDebit, "500", 0),
		tx(types.TransactionTypeCredit, "200", 1),
	})
	s.Entries[1] = Balance{Amount: decimal.NewFromInt(299)}

	err := s.Reconcile()
	assert.Error(t, err)
	assert.True(t, ierr.IsSystem(err))

	s = ComputeRunning(decimal.Zero, []Transaction{tx(types.TransactionTypeDebit, "1", 0)})
	s.Closing = decimal.NewFromInt(2)
	assert.True(t, ierr.IsSystem(s.Reconcile()))
}

func TestValidateTransactions(t *testing.T) {
	ok := []Transaction{tx(types.TransactionTypeDebit, "1", 0), tx(types.TransactionTypeCredit, "0", 0)}
	assert.NoError(t, ValidateTransactions(ok))

	negative := []Transaction{tx(types.TransactionTypeDebit, "1", 0), tx(types.TransactionTypeCredit, "-5", 1)}
	err := ValidateTransactions(negative)
	assert.True(t, ierr.IsValidation(err))

	unknown := []Transaction{{Date: day0, Type: "refund", Amount: decimal.NewFromInt(1)}}
	assert.True(t, ierr.IsValidation(ValidateTransactions(unknown)))
}

func TestOrder(t *testing.T) {
	first := tx(types.TransactionTypeDebit, "1", 0)
	first.ID = "a"
	first.CreatedAt = day0.Add(2 * time.Hour)

	second := tx(types.TransactionTypeDebit, "2", 0)
	second.ID = "b"
	second.CreatedAt = day0.Add(1 * time.Hour)

	sameKeyA := tx(types.TransactionTypeCredit, "3", 1)
	sameKeyA.ID = "c"
	sameKeyB := tx(types.TransactionTypeCredit, "4", 1)
	sameKeyB.ID = "d"

	earlier := tx(types.TransactionTypeCredit, "5", -1)
	earlier.ID = "e"

	in := []Transaction{first, sameKeyA, sameKeyB, second, earlier}
	got := Order(in)

	ids := make([]string, len(got))
	for i, t := range got {
		ids[i] = t.ID
	}
	assert.Equal(t, []string{"e", "b", "a", "c", "d"}, ids)
	assert.Equal(t, "a", in[0].ID, "input must keep its order")
}
