package layout

import (
	"bytes"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLayout() *Layout {
	return New(OptionsFromConfig(config.GetDefaultConfig().Render))
}

func TestBeginPage(t *testing.T) {
	l := newTestLayout()

	var decorated []int
	l.OnNewPage(func(l *Layout) { decorated = append(decorated, l.Page().Number) })

	p := l.BeginPage()
	assert.Equal(t, 1, p.Number)
	assert.InDelta(t, 841.89, p.Width, 0.01)
	assert.InDelta(t, 595.28, p.Height, 0.01)
	assert.Equal(t, 36.0, l.Y())

	l.Advance(100)
	assert.Equal(t, 136.0, l.Y())

	p = l.BeginPage()
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 36.0, l.Y(), "cursor resets to the top margin")
	assert.Equal(t, []int{1, 2}, decorated)
}

func TestEnsureSpace(t *testing.T) {
	l := newTestLayout()

	// the first call allocates the first page
	assert.Equal(t, 1, l.EnsureSpace(18).Number)

	// a new page is needed once remaining < 18 + 100
	l.Advance(l.Remaining() - 118.25)
	assert.Equal(t, 1, l.EnsureSpace(18).Number)

	l.Advance(0.5)
	assert.Equal(t, 2, l.EnsureSpace(18).Number)
	assert.Equal(t, 36.0, l.Y())
}

func TestEnsureRoomIgnoresRowThreshold(t *testing.T) {
	l := newTestLayout()
	assert.Equal(t, 1, l.EnsureRoom(18).Number)

	// 40pt left: too little for a table row, enough for a 30pt block
	l.Advance(l.Remaining() - 40)
	assert.Equal(t, 1, l.EnsureRoom(30).Number)
	assert.Equal(t, 2, l.EnsureSpace(18).Number)

	l.Advance(l.Remaining() - 20)
	assert.Equal(t, 3, l.EnsureRoom(30).Number)
	assert.Equal(t, 36.0, l.Y())
}

func TestTextBlockUsesSpaceDownToMargin(t *testing.T) {
	l := newTestLayout()
	l.BeginPage()
	l.SetFont(FontRegular, 8.5)

	l.Advance(l.Remaining() - 36)
	h := l.TextBlock(l.Left(), 300, 12, "line one\nline two\nline three")
	assert.Equal(t, 36.0, h)
	assert.Equal(t, 1, l.PageCount())

	l.TextBlock(l.Left(), 300, 12, "overflow")
	assert.Equal(t, 2, l.PageCount())
}

func TestHeaderRepeatsOnEveryPage(t *testing.T) {
	l := newTestLayout()
	const headerH, rowH = 20.0, 18.0

	headers := 0
	l.BeginPage()
	l.SetHeader(func() {
		headers++
		l.Advance(headerH)
	})
	l.Advance(headerH)
	headers++

	for i := 0; i < 100; i++ {
		l.EnsureSpace(rowH)
		l.Advance(rowH)
	}
	assert.Equal(t, l.PageCount(), headers)

	l.ClearHeader()
	l.BeginPage()
	assert.Equal(t, l.PageCount()-1, headers)
}

func TestFit(t *testing.T) {
	l := newTestLayout()
	l.BeginPage()
	l.SetFont(FontRegular, 9)

	assert.Equal(t, "short", l.Fit("short", 200))

	long := "Amoxicillin and Clavulanate Potassium Tablets IP 625 mg strip of ten"
	cut := l.Fit(long, 80)
	assert.LessOrEqual(t, l.PDF().GetStringWidth(cut), 80.0)
	assert.Contains(t, cut, Ellipsis)

	assert.Equal(t, "INR 100", l.Fit("₹100", 200))
}

func TestOutputProducesPDF(t *testing.T) {
	l := newTestLayout()
	l.SetFooter("Generated 01 Apr 2024 10:00")
	l.SetMetadata("Statement", "Sunrise", "med-bill", time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC))
	l.BeginPage()
	l.SetFont(FontBold, 14)
	l.Line("Account Statement ₹", 20, AlignLeft)
	h := l.TextBlock(l.Left(), 200, 12, "Goods once sold will not be taken back.\nSubject to Pune jurisdiction.")
	assert.GreaterOrEqual(t, h, 24.0)

	var buf bytes.Buffer
	require.NoError(t, l.Output(&buf))
	require.NoError(t, l.Err())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestOutputWithoutPagesStillHasOnePage(t *testing.T) {
	l := newTestLayout()
	var buf bytes.Buffer
	require.NoError(t, l.Output(&buf))
	assert.Equal(t, 1, l.PageCount())
}

func TestTableSpec(t *testing.T) {
	spec := TableSpec{
		Columns: []Column{{"Date", 1}, {"Description", 3}, {"Amount", 1}},
		Width:   500,
	}

	widths := spec.ColumnWidths()
	assert.Equal(t, []float64{100, 300, 100}, widths)
	assert.InDelta(t, (841.89-500)/2, spec.StartX(841.89), 1e-9)

	empty := TableSpec{Columns: []Column{{"A", 0}}, Width: 100}
	assert.Equal(t, []float64{0}, empty.ColumnWidths())
}

func TestTablePagination(t *testing.T) {
	opts := OptionsFromConfig(config.GetDefaultConfig().Render)
	headerH := opts.RowHeight + 2
	usable := 595.28 - 2*opts.Margin - headerH - opts.Threshold
	perPage := int(math.Floor(usable / opts.RowHeight))
	require.Equal(t, 22, perPage)

	tests := []int{0, 1, perPage, perPage + 1, 2 * perPage, 2*perPage + 1, 250}

	for _, n := range tests {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			l := New(opts)
			l.PDF().SetCompression(false)
			table := NewTable(l, TableSpec{
				Columns: []Column{{"Date", 1}, {"Description", 4}, {"Balance", 1}},
				Width:   l.ContentWidth(),
			})

			table.Begin()
			for i := 0; i < n; i++ {
				table.DrawRow([]string{"01 Apr 2024", "Row " + strconv.Itoa(i), "100.00 Dr"}, i)
			}
			table.End()

			wantPages := int(math.Max(1, math.Ceil(float64(n)/float64(perPage))))
			assert.Equal(t, wantPages, l.PageCount())

			var buf bytes.Buffer
			require.NoError(t, l.Output(&buf))
			assert.Equal(t, wantPages, bytes.Count(buf.Bytes(), []byte("(Description)")),
				"header band drawn once per page")
		})
	}
}

func TestTableZeroRowsStillDrawsHeader(t *testing.T) {
	l := newTestLayout()
	l.PDF().SetCompression(false)
	table := NewTable(l, TableSpec{Columns: []Column{{"Item", 1}, {"Qty", 1}}})
	table.Begin()
	table.DrawMessage("No records", 0)
	table.DrawTotals([]string{"Total", "0"})
	table.End()

	var buf bytes.Buffer
	require.NoError(t, l.Output(&buf))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("(Item)")))
	assert.Equal(t, 1, l.PageCount())
}
