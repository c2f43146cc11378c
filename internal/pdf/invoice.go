package pdf

import (
	"context"
	"strconv"
	"strings"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/layout"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/samber/lo"
)

var invoiceColumns = []layout.Column{
	{Label: "#", Ratio: 0.5},
	{Label: "Item", Ratio: 3.4},
	{Label: "SKU", Ratio: 1.2},
	{Label: "Qty", Ratio: 0.8},
	{Label: "Unit Price", Ratio: 1.3},
	{Label: "Discount", Ratio: 1.1},
	{Label: "Tax %", Ratio: 0.8},
	{Label: "Amount", Ratio: 1.4},
}

func (s *service) renderInvoice(ctx context.Context, data *pdf.InvoiceData) (*Document, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	inv := data.Invoice
	profile := s.orgProfile(ctx, data.OrgProfile)
	b := s.newBuilder(ctx, "Invoice "+inv.InvoiceNumber, profile, data.Watermark)

	facts := []keyValue{
		{"Invoice No", inv.InvoiceNumber},
		{"Issue Date", types.FormatDate(inv.IssueDate)},
		{"Due Date", dateOrDash(inv.DueDate)},
	}
	if inv.Status != "" {
		facts = append(facts, keyValue{"Status", strings.ToUpper(inv.Status)})
	}
	b.orgHeader("TAX INVOICE", facts)

	b.billTo(data.Customer, inv)
	b.invoiceItems(data.Items)
	b.invoiceTotals(inv)
	b.paragraph("Notes", inv.Notes)
	b.paragraph("Terms & Conditions", inv.Terms)

	s.logger.Debugw("rendered invoice",
		"invoice_number", inv.InvoiceNumber,
		"items", len(data.Items),
		"pages", b.l.PageCount(),
	)
	return b.finish()
}

func (b *builder) billTo(c *pdf.Customer, inv *pdf.Invoice) {
	l := b.l
	half := l.ContentWidth() / 2

	h := b.partyBlock(l.Left(), half, "BILL TO", c.Name, customerLines(c))

	// amount due callout on the right
	l.SetFont(layout.FontRegular, 8)
	l.SetTextColor(b.theme.Muted)
	l.TextAt(l.Left()+half, 0, half, lineH, "BALANCE DUE", layout.AlignRight)
	l.SetFont(layout.FontBold, 16)
	l.SetTextColor(b.theme.Accent)
	l.TextAt(l.Left()+half, lineH, half, 20, b.fmt.money(inv.BalanceDue()), layout.AlignRight)

	l.Advance(max(h, lineH+20) + sectionGap)
}

func (b *builder) invoiceItems(items []pdf.OrderItem) {
	t := layout.NewTable(b.l, layout.TableSpec{Columns: invoiceColumns, Width: b.l.ContentWidth()})
	t.Begin()
	if len(items) == 0 {
		t.DrawMessage("No items on this invoice", 0)
	}
	for i, item := range items {
		t.DrawRow([]string{
			strconv.Itoa(i + 1),
			item.Name,
			item.SKU,
			quantity(item.Quantity),
			b.fmt.amount(item.UnitPrice),
			b.fmt.optionalAmount(item.Discount),
			lo.Ternary(item.TaxRate.IsZero(), "", percent(item.TaxRate)),
			b.fmt.amount(item.LineTotal()),
		}, i)
	}
	t.End()
}

// invoiceTotals draws the right aligned totals block with the payment details
// beside it on the left. Both are kept together on one page.
func (b *builder) invoiceTotals(inv *pdf.Invoice) {
	l := b.l
	rows := []keyValue{
		{"Subtotal", b.fmt.money(inv.Subtotal)},
		{"Discount", "- " + b.fmt.money(inv.DiscountAmount)},
		{"Tax", b.fmt.money(inv.TaxAmount)},
		{"Shipping", b.fmt.money(inv.ShippingAmount)},
		{"Total", b.fmt.money(inv.Total)},
		{"Amount Paid", b.fmt.money(inv.AmountPaid)},
		{"Balance Due", b.fmt.money(inv.BalanceDue())},
	}

	const rowH = 15.0
	bank := b.paymentLines()
	bankH := 0.0
	if len(bank) > 0 {
		bankH = lineH * float64(len(bank)+1)
	}
	l.EnsureRoom(max(rowH*float64(len(rows)), bankH))

	w := l.ContentWidth() * 0.35
	x := l.Left() + l.ContentWidth() - w
	b.paymentDetails(bank, l.ContentWidth()-w-sectionGap)

	for i, r := range rows {
		strong := r.key == "Total" || r.key == "Balance Due"
		if strong {
			l.Box(x, 0, w, rowH, b.theme.TotalsFill)
			l.SetFont(layout.FontBold, 9.5)
		} else {
			l.SetFont(layout.FontRegular, 9)
		}
		l.SetTextColor(b.theme.Text)
		l.TextCell(x, w*0.5, rowH, r.key, layout.AlignLeft)
		l.TextCell(x+w*0.5, w*0.5, rowH, r.value, layout.AlignRight)
		l.Advance(rowH)
		if i == 3 {
			l.SetDrawColor(b.theme.Rule)
			l.PDF().Line(x, l.Y(), x+w, l.Y())
		}
	}
	l.Advance(max(bankH-rowH*float64(len(rows)), 0) + sectionGap)
}

func (b *builder) paymentLines() []string {
	if !b.org.HasBankDetails() {
		return nil
	}
	return lo.Compact([]string{
		labelled("Bank", b.org.BankName),
		labelled("Account Name", b.org.AccountHolder),
		labelled("Account No", b.org.AccountNumber),
		labelled("IFSC / Branch", b.org.BranchCode),
		labelled("UPI", b.org.UPIID),
	})
}

// paymentDetails draws the bank block at the cursor without advancing it
func (b *builder) paymentDetails(lines []string, w float64) {
	if len(lines) == 0 {
		return
	}
	l := b.l
	l.SetFont(layout.FontBold, 8.5)
	l.SetTextColor(b.theme.Text)
	l.TextAt(l.Left(), 0, w, lineH, "Payment Details", layout.AlignLeft)

	l.SetFont(layout.FontRegular, 8.5)
	l.SetTextColor(b.theme.Muted)
	for i, line := range lines {
		l.TextAt(l.Left(), lineH*float64(i+1), w, lineH, line, layout.AlignLeft)
	}
}

func customerLines(c *pdf.Customer) []string {
	locality := strings.Join(lo.Compact([]string{c.City, c.State}), ", ")
	if c.PostalCode != "" {
		locality = strings.Join(lo.Compact([]string{locality, c.PostalCode}), " - ")
	}
	return []string{
		c.CompanyName,
		c.AddressLine1,
		c.AddressLine2,
		locality,
		c.Country,
		strings.Join(lo.Compact([]string{c.Phone, c.Email}), "  |  "),
		labelled("GSTIN", c.TaxID),
	}
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
