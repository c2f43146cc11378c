package pdf

import (
	"context"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/ledger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/layout"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

var ledgerColumns = []layout.Column{
	{Label: "Date", Ratio: 1.1},
	{Label: "Description", Ratio: 3.2},
	{Label: "Reference", Ratio: 1.4},
	{Label: "Debit", Ratio: 1.2},
	{Label: "Credit", Ratio: 1.2},
	{Label: "Balance", Ratio: 1.5},
}

const ledgerLegend = "Dr: amount receivable from the customer.  Cr: amount payable to the customer or advance received."

func (s *service) renderLedger(ctx context.Context, data *pdf.LedgerData) (*Document, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	txs := ledger.Order(data.Transactions)
	stmt := ledger.ComputeRunning(data.OpeningBalance, txs)
	if err := stmt.Reconcile(); err != nil {
		return nil, err
	}

	profile := s.orgProfile(ctx, nil)
	b := s.newBuilder(ctx, "Account Statement - "+data.Customer.Name, profile, data.Watermark)

	b.orgHeader("ACCOUNT STATEMENT", []keyValue{
		{"Period", data.Period.String()},
		{"Generated", types.FormatDate(b.now)},
	})

	l := b.l
	h := b.partyBlock(l.Left(), l.ContentWidth()/2, "STATEMENT FOR", data.Customer.Name, customerLines(data.Customer))
	l.Advance(h + sectionGap)

	b.summaryStrip([]keyValue{
		{"Opening Balance", b.fmt.balance(stmt.OpeningBalance())},
		{"Total Debits", b.fmt.amount(stmt.TotalDebits)},
		{"Total Credits", b.fmt.amount(stmt.TotalCredits)},
		{"Closing Balance", b.fmt.balance(stmt.ClosingBalance())},
	})

	b.ledgerTable(data, txs, stmt)

	l.SetFont(layout.FontItalic, 7.5)
	l.SetTextColor(b.theme.Muted)
	l.Line(ledgerLegend, lineH, layout.AlignLeft)

	s.logger.Debugw("rendered ledger statement",
		"customer", data.Customer.Name,
		"transactions", len(txs),
		"closing", stmt.Closing.String(),
		"pages", l.PageCount(),
	)
	return b.finish()
}

func (b *builder) ledgerTable(data *pdf.LedgerData, txs []ledger.Transaction, stmt *ledger.Statement) {
	t := layout.NewTable(b.l, layout.TableSpec{Columns: ledgerColumns, Width: b.l.ContentWidth()})
	t.Begin()

	t.DrawRow([]string{
		types.FormatDate(data.Period.From),
		"Opening Balance",
		"",
		"",
		"",
		b.fmt.balance(stmt.OpeningBalance()),
	}, 0)

	if len(txs) == 0 {
		t.DrawMessage("No transactions in this period", 1)
	}

	for i, tx := range txs {
		debit, credit := "", ""
		if tx.Type == types.TransactionTypeDebit {
			debit = b.fmt.amount(tx.Amount)
		} else {
			credit = b.fmt.amount(tx.Amount)
		}
		t.DrawRow([]string{
			types.FormatDate(tx.Date),
			tx.Description,
			tx.Reference,
			debit,
			credit,
			b.fmt.balance(stmt.Entries[i]),
		}, i+1)
	}

	t.DrawTotals([]string{
		"",
		"Closing Balance",
		"",
		b.fmt.amount(stmt.TotalDebits),
		b.fmt.amount(stmt.TotalCredits),
		b.fmt.balance(stmt.ClosingBalance()),
	})
	t.End()
}
