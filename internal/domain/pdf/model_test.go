package pdf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/ledger"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOrderItem_LineTotal(t *testing.T) {
	tests := []struct {
		name string
		item OrderItem
		want string
	}{
		{
			name: "explicit amount wins",
			item: OrderItem{Quantity: d("2"), UnitPrice: d("10"), Amount: d("99")},
			want: "99",
		},
		{
			name: "derived with discount and tax",
			item: OrderItem{Quantity: d("3"), UnitPrice: d("100"), Discount: d("50"), TaxRate: d("12")},
			want: "280",
		},
		{
			name: "derived without tax",
			item: OrderItem{Quantity: d("1.5"), UnitPrice: d("20.10")},
			want: "30.15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.item.LineTotal().Equal(d(tt.want)), "got %s", tt.item.LineTotal())
		})
	}
}

func TestReportData_Totals(t *testing.T) {
	r := &ReportData{
		Sales: &SalesSummary{InvoiceCount: 4, NetSales: d("1000")},
		Aging: []AgingRow{
			{Customer: "A", Current: d("10"), Over90: d("5")},
			{Customer: "B", Days1To30: d("7"), Days61To90: d("3")},
		},
		LedgerSummary: []LedgerSummaryRow{
			{Customer: "A", Opening: d("100"), Debits: d("50"), Credits: d("20")},
			{Customer: "B", Opening: d("-10"), Debits: d("0"), Credits: d("40")},
		},
	}

	assert.True(t, r.Sales.AverageInvoiceValue().Equal(d("250")))
	assert.True(t, (&SalesSummary{}).AverageInvoiceValue().IsZero())

	totals := r.AgingTotals()
	require.Len(t, totals, 5)
	assert.True(t, totals[0].Equal(d("10")))
	assert.True(t, totals[1].Equal(d("7")))
	assert.True(t, totals[3].Equal(d("3")))
	assert.True(t, totals[4].Equal(d("5")))
	assert.True(t, r.Aging[0].Total().Equal(d("15")))

	opening, debits, credits, closing := r.LedgerSummaryTotals()
	assert.True(t, opening.Equal(d("90")))
	assert.True(t, debits.Equal(d("50")))
	assert.True(t, credits.Equal(d("60")))
	assert.True(t, closing.Equal(d("80")))
	assert.True(t, r.LedgerSummary[1].Closing().Equal(d("-50")))
}

func TestTurnoverRatio(t *testing.T) {
	assert.True(t, TurnoverRow{OpeningStock: d("40"), ClosingStock: d("60"), Sold: d("125")}.TurnoverRatio().Equal(d("2.5")))
	assert.True(t, TurnoverRow{Sold: d("10")}.TurnoverRatio().IsZero())
}

func fy2024() types.DateRange {
	return types.DateRange{
		From: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestLedgerData_Validate(t *testing.T) {
	valid := func() *LedgerData {
		return &LedgerData{
			Customer: &Customer{Name: "Apollo Pharmacy"},
			Period:   fy2024(),
			Transactions: []ledger.Transaction{
				{Date: time.Now(), Type: types.TransactionTypeDebit, Amount: d("10")},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*LedgerData)
		wantErr bool
	}{
		{name: "valid", mutate: func(*LedgerData) {}},
		{name: "empty transactions allowed", mutate: func(l *LedgerData) { l.Transactions = []ledger.Transaction{} }},
		{name: "missing transactions list", mutate: func(l *LedgerData) { l.Transactions = nil }, wantErr: true},
		{name: "missing customer", mutate: func(l *LedgerData) { l.Customer = nil }, wantErr: true},
		{name: "negative amount", mutate: func(l *LedgerData) { l.Transactions[0].Amount = d("-1") }, wantErr: true},
		{name: "unknown type", mutate: func(l *LedgerData) { l.Transactions[0].Type = "refund" }, wantErr: true},
		{name: "missing period", mutate: func(l *LedgerData) { l.Period = types.DateRange{} }, wantErr: true},
		{name: "single day period", mutate: func(l *LedgerData) { l.Period.To = l.Period.From }},
		{
			name: "inverted period",
			mutate: func(l *LedgerData) {
				l.Period = types.DateRange{From: time.Now(), To: time.Now().AddDate(0, 0, -1)}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			tt.mutate(data)
			err := data.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}

	var missing *LedgerData
	assert.True(t, ierr.IsValidation(missing.Validate()))
}

func TestInvoiceData_ValidateAndDecode(t *testing.T) {
	raw := `{
		"invoice": {"invoice_number": "INV-0001", "issue_date": "2024-04-01T00:00:00Z", "total": "118.00"},
		"customer": {"name": "City Clinic"},
		"items": [{"name": "Paracetamol 500mg", "quantity": 10, "unit_price": "10.00", "tax_rate": "18"}]
	}`

	var data InvoiceData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	require.NoError(t, data.Validate())
	assert.True(t, data.Items[0].LineTotal().Equal(d("118")))
	assert.True(t, data.Invoice.BalanceDue().Equal(d("118")))

	data.Items[0].Name = ""
	assert.True(t, ierr.IsValidation(data.Validate()))

	data.Items = nil
	assert.True(t, ierr.IsValidation(data.Validate()))
}

func TestReportData_Validate(t *testing.T) {
	r := &ReportData{Period: fy2024(), Sales: &SalesSummary{}}
	assert.NoError(t, r.Validate())

	r.Sales = nil
	assert.True(t, ierr.IsValidation(r.Validate()))

	r = &ReportData{Sales: &SalesSummary{}}
	assert.True(t, ierr.IsValidation(r.Validate()), "period is required")

	r = &ReportData{Period: fy2024(), Sales: &SalesSummary{}, Aging: []AgingRow{{}}}
	assert.True(t, ierr.IsValidation(r.Validate()))
}
