package pdf

import (
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/ledger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Customer is the counterparty printed in the bill-to and statement blocks
type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	CompanyName  string `json:"company_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

// Invoice is the header of a sales invoice. Amounts are in the document currency.
type Invoice struct {
	ID             string          `json:"id"`
	InvoiceNumber  string          `json:"invoice_number" validate:"required"`
	Status         string          `json:"status,omitempty"`
	IssueDate      time.Time       `json:"issue_date" validate:"required"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
	Total          decimal.Decimal `json:"total"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	Notes          string          `json:"notes,omitempty"`
	Terms          string          `json:"terms,omitempty"`
}

// BalanceDue is the part of the total not yet paid
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.Total.Sub(i.AmountPaid)
}

// OrderItem is one line of an invoice
type OrderItem struct {
	Name      string          `json:"name" validate:"required"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	// TaxRate is a percentage, 18 means 18%
	TaxRate decimal.Decimal `json:"tax_rate"`
	// Amount is the line total; when zero it is derived from the other fields
	Amount decimal.Decimal `json:"amount"`
}

// LineTotal returns Amount, or quantity * unit price - discount plus tax when Amount is unset
func (o OrderItem) LineTotal() decimal.Decimal {
	if !o.Amount.IsZero() {
		return o.Amount
	}
	net := o.Quantity.Mul(o.UnitPrice).Sub(o.Discount)
	tax := net.Mul(o.TaxRate).Div(decimal.NewFromInt(100))
	return net.Add(tax).Round(2)
}

// InvoiceData is the payload for an invoice document
type InvoiceData struct {
	Invoice  *Invoice    `json:"invoice" validate:"required"`
	Customer *Customer   `json:"customer" validate:"required"`
	Items    []OrderItem `json:"items" validate:"required,dive"`

	// OrgProfile replaces the cached organization profile for this document only
	OrgProfile *org.Profile `json:"org_profile,omitempty"`

	// Watermark is a bundled asset name or an http(s) URL; empty uses the configured default
	Watermark string `json:"watermark,omitempty"`
}

// LedgerData is the payload for a customer account statement
type LedgerData struct {
	Customer       *Customer            `json:"customer" validate:"required"`
	Transactions   []ledger.Transaction `json:"transactions" validate:"required,dive"`
	Period         types.DateRange      `json:"period"`
	OpeningBalance decimal.Decimal      `json:"opening_balance"`
	Watermark      string               `json:"watermark,omitempty"`
}

// SalesSummary is the always-present first section of a business report
type SalesSummary struct {
	InvoiceCount      int             `json:"invoice_count"`
	GrossSales        decimal.Decimal `json:"gross_sales"`
	Discounts         decimal.Decimal `json:"discounts"`
	Tax               decimal.Decimal `json:"tax"`
	NetSales          decimal.Decimal `json:"net_sales"`
	AmountCollected   decimal.Decimal `json:"amount_collected"`
	AmountOutstanding decimal.Decimal `json:"amount_outstanding"`
}

// AverageInvoiceValue is net sales divided by the invoice count, zero when there are no invoices
func (s *SalesSummary) AverageInvoiceValue() decimal.Decimal {
	if s.InvoiceCount <= 0 {
		return decimal.Zero
	}
	return s.NetSales.Div(decimal.NewFromInt(int64(s.InvoiceCount))).Round(2)
}

// HealthMetrics are business ratios computed by the data service
type HealthMetrics struct {
	// CollectionRate and GrossMargin are percentages
	CollectionRate   decimal.Decimal `json:"collection_rate"`
	GrossMargin      decimal.Decimal `json:"gross_margin"`
	AverageDaysToPay decimal.Decimal `json:"average_days_to_pay"`
	ActiveCustomers  int             `json:"active_customers"`
	OverdueInvoices  int             `json:"overdue_invoices"`
	LowStockProducts int             `json:"low_stock_products"`
}

// TurnoverRow is one product in the inventory turnover table
type TurnoverRow struct {
	Product      string          `json:"product" validate:"required"`
	SKU          string          `json:"sku,omitempty"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
	Received     decimal.Decimal `json:"received"`
	Sold         decimal.Decimal `json:"sold"`
	ClosingStock decimal.Decimal `json:"closing_stock"`
}

// TurnoverRatio is units sold over average stock, zero when there was no stock
func (r TurnoverRow) TurnoverRatio() decimal.Decimal {
	avg := r.OpeningStock.Add(r.ClosingStock).Div(decimal.NewFromInt(2))
	if !avg.IsPositive() {
		return decimal.Zero
	}
	return r.Sold.Div(avg).Round(2)
}

// AgingRow is the outstanding receivable of one customer split by age bucket
type AgingRow struct {
	Customer   string          `json:"customer" validate:"required"`
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days_1_30"`
	Days31To60 decimal.Decimal `json:"days_31_60"`
	Days61To90 decimal.Decimal `json:"days_61_90"`
	Over90     decimal.Decimal `json:"over_90"`
}

// Buckets returns the amounts in column order
func (r AgingRow) Buckets() []decimal.Decimal {
	return []decimal.Decimal{r.Current, r.Days1To30, r.Days31To60, r.Days61To90, r.Over90}
}

// Total is the sum of all buckets
func (r AgingRow) Total() decimal.Decimal {
	return decimal.Sum(decimal.Zero, r.Buckets()...)
}

// LedgerSummaryRow is the per-customer movement for the report period
type LedgerSummaryRow struct {
	Customer string          `json:"customer" validate:"required"`
	Opening  decimal.Decimal `json:"opening"`
	Debits   decimal.Decimal `json:"debits"`
	Credits  decimal.Decimal `json:"credits"`
}

// Closing applies opening + debits - credits
func (r LedgerSummaryRow) Closing() decimal.Decimal {
	return ledger.Close(r.Opening, r.Debits, r.Credits)
}

// ReportData is the payload for a business report. Period and Sales are
// required; the other sections are skipped when absent.
type ReportData struct {
	Period        types.DateRange    `json:"period"`
	Sales         *SalesSummary      `json:"sales" validate:"required"`
	Health        *HealthMetrics     `json:"health,omitempty"`
	Turnover      []TurnoverRow      `json:"turnover,omitempty" validate:"dive"`
	Aging         []AgingRow         `json:"aging,omitempty" validate:"dive"`
	LedgerSummary []LedgerSummaryRow `json:"ledger_summary,omitempty" validate:"dive"`
	Watermark     string             `json:"watermark,omitempty"`
}

// AgingTotals sums every bucket across rows, in column order
func (r *ReportData) AgingTotals() []decimal.Decimal {
	totals := make([]decimal.Decimal, 5)
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, row := range r.Aging {
		for i, v := range row.Buckets() {
			totals[i] = totals[i].Add(v)
		}
	}
	return totals
}

// LedgerSummaryTotals sums opening, debits, credits and closing across rows
func (r *ReportData) LedgerSummaryTotals() (opening, debits, credits, closing decimal.Decimal) {
	opening = lo.Reduce(r.LedgerSummary, func(acc decimal.Decimal, row LedgerSummaryRow, _ int) decimal.Decimal {
		return acc.Add(row.Opening)
	}, decimal.Zero)
	debits = lo.Reduce(r.LedgerSummary, func(acc decimal.Decimal, row LedgerSummaryRow, _ int) decimal.Decimal {
		return acc.Add(row.Debits)
	}, decimal.Zero)
	credits = lo.Reduce(r.LedgerSummary, func(acc decimal.Decimal, row LedgerSummaryRow, _ int) decimal.Decimal {
		return acc.Add(row.Credits)
	}, decimal.Zero)
	return opening, debits, credits, ledger.Close(opening, debits, credits)
}

func (d *InvoiceData) Validate() error {
	if d == nil {
		return errMissingPayload("invoice")
	}
	return validator.ValidateRequest(d)
}

func (d *LedgerData) Validate() error {
	if d == nil {
		return errMissingPayload("ledger")
	}
	if err := validator.ValidateRequest(d); err != nil {
		return err
	}
	if err := d.Period.Validate(); err != nil {
		return err
	}
	return ledger.ValidateTransactions(d.Transactions)
}

func (d *ReportData) Validate() error {
	if d == nil {
		return errMissingPayload("report")
	}
	if err := validator.ValidateRequest(d); err != nil {
		return err
	}
	return d.Period.Validate()
}

func errMissingPayload(kind string) error {
	return ierr.NewErrorf("%s payload is required", kind).
		WithHintf("Please provide the %s data", kind).
		Mark(ierr.ErrValidation)
}
