package layout

import (
	"github.com/samber/lo"
)

// Column is one table column. Ratio is its share of the table width.
type Column struct {
	Label string
	Ratio float64
}

// TableSpec is the column layout of a table, centered on the page
type TableSpec struct {
	Columns []Column
	Width   float64
}

// ColumnWidths converts ratios into absolute widths summing to Width
func (s TableSpec) ColumnWidths() []float64 {
	total := lo.SumBy(s.Columns, func(c Column) float64 { return c.Ratio })
	widths := make([]float64, len(s.Columns))
	if total <= 0 {
		return widths
	}
	for i, c := range s.Columns {
		widths[i] = c.Ratio / total * s.Width
	}
	return widths
}

// StartX centers the table horizontally
func (s TableSpec) StartX(pageWidth float64) float64 {
	return (pageWidth - s.Width) / 2
}

// Table draws a header band and rows of a TableSpec through a Layout.
// While a table is open its header is redrawn at the top of every new page.
type Table struct {
	l       *Layout
	spec    TableSpec
	widths  []float64
	rowH    float64
	headerH float64
}

// NewTable prepares a table. A zero spec width uses the full content width.
func NewTable(l *Layout, spec TableSpec) *Table {
	if spec.Width <= 0 {
		spec.Width = l.ContentWidth()
	}
	return &Table{
		l:       l,
		spec:    spec,
		widths:  spec.ColumnWidths(),
		rowH:    l.opts.RowHeight,
		headerH: l.opts.RowHeight + 2,
	}
}

// RowHeight is the height of a body row
func (t *Table) RowHeight() float64 { return t.rowH }

// HeaderHeight is the height of the header band
func (t *Table) HeaderHeight() float64 { return t.headerH }

// Begin draws the header, keeping it on the same page as the first row,
// and registers it for repetition on later pages.
func (t *Table) Begin() {
	t.l.EnsureSpace(t.headerH + t.rowH)
	t.DrawHeader()
	t.l.SetHeader(t.DrawHeader)
}

// End stops header repetition and leaves a gap below the table
func (t *Table) End() {
	t.l.ClearHeader()
	t.l.Advance(t.rowH / 2)
}

// DrawHeader paints the header band at the cursor: dark fill, light bold
// labels, column rules and a closing rule across the full width.
func (t *Table) DrawHeader() {
	theme := t.l.Theme()
	x := t.spec.StartX(t.l.page.Width)
	top := t.l.y

	t.l.SetFillColor(theme.HeaderFill)
	t.l.doc.Rect(x, top, t.spec.Width, t.headerH, "F")

	t.l.SetFont(FontBold, 8.5)
	t.l.SetTextColor(theme.HeaderText)
	cx := x
	for i, c := range t.spec.Columns {
		t.l.TextCell(cx, t.widths[i], t.headerH, c.Label, AlignLeft)
		cx += t.widths[i]
	}

	t.rules(x, top, t.headerH, theme.HeaderText)
	t.l.SetDrawColor(theme.Rule)
	t.l.doc.SetLineWidth(1)
	t.l.doc.Line(x, top+t.headerH, x+t.spec.Width, top+t.headerH)

	t.l.Advance(t.headerH)
	t.l.SetFont(FontRegular, 8.5)
	t.l.SetTextColor(theme.Text)
}

// DrawRow paints one body row. It may start a new page first, in which case
// the header is redrawn before the row. Odd rows get the zebra fill.
func (t *Table) DrawRow(cells []string, rowIndex int) {
	t.l.EnsureSpace(t.rowH)
	theme := t.l.Theme()
	x := t.spec.StartX(t.l.page.Width)

	if rowIndex%2 == 1 {
		t.l.SetFillColor(theme.ZebraFill)
		t.l.doc.Rect(x, t.l.y, t.spec.Width, t.rowH, "F")
	}

	t.l.SetFont(FontRegular, 8.5)
	t.l.SetTextColor(theme.Text)
	t.drawCells(x, cells)
	t.rules(x, t.l.y, t.rowH, theme.Rule)
	t.l.Advance(t.rowH)
}

// DrawTotals paints a bold tinted summary row
func (t *Table) DrawTotals(cells []string) {
	t.l.EnsureSpace(t.rowH)
	theme := t.l.Theme()
	x := t.spec.StartX(t.l.page.Width)

	t.l.SetFillColor(theme.TotalsFill)
	t.l.doc.Rect(x, t.l.y, t.spec.Width, t.rowH, "F")

	t.l.SetFont(FontBold, 8.5)
	t.l.SetTextColor(theme.Text)
	t.drawCells(x, cells)
	t.rules(x, t.l.y, t.rowH, theme.Rule)

	t.l.SetDrawColor(theme.HeaderFill)
	t.l.doc.SetLineWidth(1)
	t.l.doc.Line(x, t.l.y, x+t.spec.Width, t.l.y)

	t.l.Advance(t.rowH)
	t.l.SetFont(FontRegular, 8.5)
}

// DrawMessage paints a single italic cell spanning every column
func (t *Table) DrawMessage(text string, rowIndex int) {
	t.l.EnsureSpace(t.rowH)
	theme := t.l.Theme()
	x := t.spec.StartX(t.l.page.Width)

	if rowIndex%2 == 1 {
		t.l.SetFillColor(theme.ZebraFill)
		t.l.doc.Rect(x, t.l.y, t.spec.Width, t.rowH, "F")
	}

	t.l.SetFont(FontItalic, 8.5)
	t.l.SetTextColor(theme.Muted)
	t.l.TextCell(x, t.spec.Width, t.rowH, text, AlignCenter)
	t.l.Advance(t.rowH)

	t.l.SetFont(FontRegular, 8.5)
	t.l.SetTextColor(theme.Text)
}

func (t *Table) drawCells(x float64, cells []string) {
	cx := x
	for i, w := range t.widths {
		if i < len(cells) {
			t.l.TextCell(cx, w, t.rowH, cells[i], AlignLeft)
		}
		cx += w
	}
}

// rules draws the vertical column boundaries of a band
func (t *Table) rules(x, top, h float64, c Color) {
	t.l.SetDrawColor(c)
	t.l.doc.SetLineWidth(0.4)
	cx := x
	t.l.doc.Line(cx, top, cx, top+h)
	for _, w := range t.widths {
		cx += w
		t.l.doc.Line(cx, top, cx, top+h)
	}
}
