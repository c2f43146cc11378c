package pdf

import (
	"bytes"
	"context"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/layout"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

const (
	creator = "MedBill Document Engine"

	lineH      = 12.0
	sectionGap = 14.0
)

// Document is a finished PDF
type Document struct {
	Bytes     []byte
	PageCount int
}

// builder carries the per-document state shared by the assemblers
type builder struct {
	l     *layout.Layout
	org   *org.Profile
	fmt   formatter
	now   time.Time
	theme layout.Theme
}

type keyValue struct {
	key   string
	value string
}

// newBuilder sets up the layout, footer, metadata and watermark and opens the first page
func (s *service) newBuilder(ctx context.Context, title string, profile *org.Profile, watermarkRef string) *builder {
	l := layout.New(s.layout)
	now := s.clock.Now()

	l.SetMetadata(title, profile.Name, creator, now)
	l.SetFooter("Generated on " + now.Format("02 Jan 2006 15:04") + "  |  " + profile.Name)

	if watermarkRef == "" {
		watermarkRef = s.config.Assets.DefaultWatermark
	}
	if watermarkRef != "" && s.embedder != nil {
		page := l.Page()
		if wm, ok := s.embedder.Embed(ctx, watermarkRef, page.Width, page.Height); ok {
			l.OnNewPage(func(l *layout.Layout) {
				wm.Draw(l.PDF())
			})
		}
	}

	l.BeginPage()

	return &builder{
		l:     l,
		org:   profile,
		fmt:   newFormatter(s.config.Render.Currency),
		now:   now,
		theme: l.Theme(),
	}
}

// finish writes the document out
func (b *builder) finish() (*Document, error) {
	if err := b.l.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate document").
			Mark(ierr.ErrSystem)
	}

	var buf bytes.Buffer
	if err := b.l.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate document").
			Mark(ierr.ErrSystem)
	}

	return &Document{
		Bytes:     buf.Bytes(),
		PageCount: b.l.PageCount(),
	}, nil
}

// orgHeader draws the organization block on the left and the document
// title with its key facts on the right, then a rule below both.
func (b *builder) orgHeader(title string, facts []keyValue) {
	l := b.l
	left := l.Left()
	width := l.ContentWidth()
	leftW := width * 0.6
	rightX := left + leftW
	rightW := width - leftW

	var dy float64
	l.SetFont(layout.FontBold, 16)
	l.SetTextColor(b.theme.Accent)
	l.TextAt(left, dy, leftW, 20, b.org.Name, layout.AlignLeft)
	dy += 22

	l.SetFont(layout.FontRegular, 8.5)
	l.SetTextColor(b.theme.Muted)
	lines := append(b.org.AddressLines(), b.org.ContactLine(), b.org.TaxLine())
	for _, line := range lines {
		if line == "" {
			continue
		}
		l.TextAt(left, dy, leftW, lineH, line, layout.AlignLeft)
		dy += lineH
	}
	leftH := dy

	dy = 0
	l.SetFont(layout.FontBold, 18)
	l.SetTextColor(b.theme.HeaderFill)
	l.TextAt(rightX, dy, rightW, 22, title, layout.AlignRight)
	dy += 26
	dy += b.factsAt(rightX, dy, rightW, facts)

	l.Advance(max(leftH, dy) + 6)
	l.Rule(b.theme.Accent, 1.5)
	l.Advance(sectionGap)
}

// factsAt draws right aligned "key: value" pairs and returns their height
func (b *builder) factsAt(x, dy, w float64, facts []keyValue) float64 {
	l := b.l
	var h float64
	for _, f := range facts {
		l.SetFont(layout.FontRegular, 8.5)
		l.SetTextColor(b.theme.Muted)
		l.TextAt(x, dy+h, w*0.55, lineH, f.key, layout.AlignRight)
		l.SetFont(layout.FontBold, 8.5)
		l.SetTextColor(b.theme.Text)
		l.TextAt(x+w*0.55, dy+h, w*0.45, lineH, f.value, layout.AlignRight)
		h += lineH
	}
	return h
}

// partyBlock draws a labelled address block at x and returns its height
func (b *builder) partyBlock(x, w float64, label string, name string, lines []string) float64 {
	l := b.l
	var dy float64

	l.SetFont(layout.FontBold, 7.5)
	l.SetTextColor(b.theme.Muted)
	l.TextAt(x, dy, w, lineH, label, layout.AlignLeft)
	dy += lineH

	l.SetFont(layout.FontBold, 10.5)
	l.SetTextColor(b.theme.Text)
	l.TextAt(x, dy, w, 14, name, layout.AlignLeft)
	dy += 14

	l.SetFont(layout.FontRegular, 8.5)
	for _, line := range lines {
		if line == "" {
			continue
		}
		l.TextAt(x, dy, w, lineH, line, layout.AlignLeft)
		dy += lineH
	}
	return dy
}

// section starts a titled section, keeping the title with at least minBody below it
func (b *builder) section(title string, minBody float64) {
	l := b.l
	l.EnsureSpace(18 + minBody)
	l.SetFont(layout.FontBold, 11)
	l.SetTextColor(b.theme.Accent)
	l.TextCell(l.Left(), l.ContentWidth(), 16, title, layout.AlignLeft)
	l.Advance(18)
	l.SetTextColor(b.theme.Text)
}

// keyValueTable draws two-column metric rows as a table
func (b *builder) keyValueTable(rows []keyValue) {
	t := layout.NewTable(b.l, layout.TableSpec{
		Columns: []layout.Column{{Label: "Metric", Ratio: 2}, {Label: "Value", Ratio: 1}},
		Width:   b.l.ContentWidth() * 0.55,
	})
	t.Begin()
	for i, r := range rows {
		t.DrawRow([]string{r.key, r.value}, i)
	}
	t.End()
}

// summaryStrip draws equal-width tiles with a caption and a value
func (b *builder) summaryStrip(tiles []keyValue) {
	l := b.l
	const tileH = 38.0
	l.EnsureSpace(tileH)

	gap := 8.0
	w := (l.ContentWidth() - gap*float64(len(tiles)-1)) / float64(len(tiles))
	x := l.Left()
	for _, tile := range tiles {
		l.Box(x, 0, w, tileH, b.theme.ZebraFill)
		l.SetFont(layout.FontRegular, 7.5)
		l.SetTextColor(b.theme.Muted)
		l.TextAt(x, 4, w, lineH, tile.key, layout.AlignLeft)
		l.SetFont(layout.FontBold, 12)
		l.SetTextColor(b.theme.Text)
		l.TextAt(x, 18, w, 16, tile.value, layout.AlignLeft)
		x += w + gap
	}
	l.Advance(tileH + sectionGap)
}

// paragraph draws a small heading followed by wrapped text
func (b *builder) paragraph(heading, text string) {
	if text == "" {
		return
	}
	l := b.l
	// heading stays with the first line of text
	l.EnsureRoom(lineH * 2)
	l.SetFont(layout.FontBold, 8.5)
	l.SetTextColor(b.theme.Text)
	l.TextCell(l.Left(), l.ContentWidth(), lineH, heading, layout.AlignLeft)
	l.Advance(lineH)
	l.SetFont(layout.FontRegular, 8.5)
	l.SetTextColor(b.theme.Muted)
	l.TextBlock(l.Left(), l.ContentWidth()*0.6, lineH, text)
	l.Advance(6)
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return types.FormatDate(*t)
}
