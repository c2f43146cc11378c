package pdf

import (
	"context"
	"strconv"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/ledger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/layout"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	turnoverColumns = []layout.Column{
		{Label: "Product", Ratio: 3},
		{Label: "SKU", Ratio: 1.2},
		{Label: "Opening", Ratio: 1},
		{Label: "Received", Ratio: 1},
		{Label: "Sold", Ratio: 1},
		{Label: "Closing", Ratio: 1},
		{Label: "Turnover", Ratio: 1},
	}
	agingColumns = []layout.Column{
		{Label: "Customer", Ratio: 3},
		{Label: "Current", Ratio: 1.2},
		{Label: "1-30 Days", Ratio: 1.2},
		{Label: "31-60 Days", Ratio: 1.2},
		{Label: "61-90 Days", Ratio: 1.2},
		{Label: "90+ Days", Ratio: 1.2},
		{Label: "Total", Ratio: 1.3},
	}
	ledgerSummaryColumns = []layout.Column{
		{Label: "Customer", Ratio: 3},
		{Label: "Opening", Ratio: 1.4},
		{Label: "Debits", Ratio: 1.4},
		{Label: "Credits", Ratio: 1.4},
		{Label: "Closing", Ratio: 1.6},
	}
)

func (s *service) renderReport(ctx context.Context, data *pdf.ReportData) (*Document, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	profile := s.orgProfile(ctx, nil)
	b := s.newBuilder(ctx, "Business Report "+data.Period.String(), profile, data.Watermark)

	b.orgHeader("BUSINESS REPORT", []keyValue{
		{"Period", data.Period.String()},
		{"Generated", types.FormatDate(b.now)},
	})

	b.salesSummary(data.Sales)
	if data.Health != nil {
		b.healthMetrics(data.Health)
	}
	if len(data.Turnover) > 0 {
		b.turnover(data.Turnover)
	}
	if len(data.Aging) > 0 {
		b.aging(data)
	}
	if len(data.LedgerSummary) > 0 {
		b.ledgerSummary(data)
	}

	s.logger.Debugw("rendered business report",
		"period", data.Period.String(),
		"sections", lo.Count([]bool{
			true,
			data.Health != nil,
			len(data.Turnover) > 0,
			len(data.Aging) > 0,
			len(data.LedgerSummary) > 0,
		}, true),
		"pages", b.l.PageCount(),
	)
	return b.finish()
}

func (b *builder) salesSummary(s *pdf.SalesSummary) {
	b.section("Sales Summary", 40)
	b.keyValueTable([]keyValue{
		{"Invoices Issued", strconv.Itoa(s.InvoiceCount)},
		{"Gross Sales", b.fmt.money(s.GrossSales)},
		{"Discounts", b.fmt.money(s.Discounts)},
		{"Tax Collected", b.fmt.money(s.Tax)},
		{"Net Sales", b.fmt.money(s.NetSales)},
		{"Amount Collected", b.fmt.money(s.AmountCollected)},
		{"Amount Outstanding", b.fmt.money(s.AmountOutstanding)},
		{"Average Invoice Value", b.fmt.money(s.AverageInvoiceValue())},
	})
}

func (b *builder) healthMetrics(h *pdf.HealthMetrics) {
	b.section("Business Health", 40)
	b.keyValueTable([]keyValue{
		{"Collection Rate", percent(h.CollectionRate)},
		{"Gross Margin", percent(h.GrossMargin)},
		{"Average Days to Pay", h.AverageDaysToPay.StringFixed(1)},
		{"Active Customers", strconv.Itoa(h.ActiveCustomers)},
		{"Overdue Invoices", strconv.Itoa(h.OverdueInvoices)},
		{"Low Stock Products", strconv.Itoa(h.LowStockProducts)},
	})
}

func (b *builder) turnover(rows []pdf.TurnoverRow) {
	b.section("Inventory Turnover", 40)
	t := layout.NewTable(b.l, layout.TableSpec{Columns: turnoverColumns, Width: b.l.ContentWidth()})
	t.Begin()
	for i, r := range rows {
		t.DrawRow([]string{
			r.Product,
			r.SKU,
			quantity(r.OpeningStock),
			quantity(r.Received),
			quantity(r.Sold),
			quantity(r.ClosingStock),
			r.TurnoverRatio().StringFixed(2) + "x",
		}, i)
	}
	t.End()
}

func (b *builder) aging(data *pdf.ReportData) {
	b.section("Receivables Aging", 40)
	t := layout.NewTable(b.l, layout.TableSpec{Columns: agingColumns, Width: b.l.ContentWidth()})
	t.Begin()
	for i, r := range data.Aging {
		cells := []string{r.Customer}
		cells = append(cells, lo.Map(r.Buckets(), func(d decimal.Decimal, _ int) string {
			return b.fmt.optionalAmount(d)
		})...)
		t.DrawRow(append(cells, b.fmt.amount(r.Total())), i)
	}

	totals := data.AgingTotals()
	cells := []string{"Total"}
	cells = append(cells, lo.Map(totals, func(d decimal.Decimal, _ int) string {
		return b.fmt.amount(d)
	})...)
	t.DrawTotals(append(cells, b.fmt.amount(decimal.Sum(decimal.Zero, totals...))))
	t.End()
}

func (b *builder) ledgerSummary(data *pdf.ReportData) {
	b.section("Customer Ledger Summary", 40)
	t := layout.NewTable(b.l, layout.TableSpec{Columns: ledgerSummaryColumns, Width: b.l.ContentWidth()})
	t.Begin()
	for i, r := range data.LedgerSummary {
		t.DrawRow(b.fmt.ledgerSummaryCells(r.Customer, r.Opening, r.Debits, r.Credits, r.Closing()), i)
	}

	opening, debits, credits, closing := data.LedgerSummaryTotals()
	t.DrawTotals(b.fmt.ledgerSummaryCells("Total", opening, debits, credits, closing))
	t.End()
}

// ledgerSummaryCells prints both balances with their Dr/Cr side and the
// period movements as plain amounts.
func (f formatter) ledgerSummaryCells(label string, opening, debits, credits, closing decimal.Decimal) []string {
	return []string{
		label,
		f.balance(ledger.Balance{Amount: opening}),
		f.amount(debits),
		f.amount(credits),
		f.balance(ledger.Balance{Amount: closing}),
	}
}
