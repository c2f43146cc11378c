// Package layout owns page geometry, the write cursor and every text draw
// of a document. Units are PDF points; y grows downwards from the top margin.
package layout

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/sanitize"
	"github.com/go-pdf/fpdf"
)

const (
	FontRegular = ""
	FontBold    = "B"
	FontItalic  = "I"

	AlignLeft   = "L"
	AlignRight  = "R"
	AlignCenter = "C"

	// Ellipsis is appended to text cut to fit a cell
	Ellipsis = "..."

	// DefaultThreshold keeps content this far above the bottom margin
	DefaultThreshold = 100

	defaultFontSize = 9
	cellInset       = 4
)

// Page describes the page the cursor is currently on
type Page struct {
	Number int
	Width  float64
	Height float64
	Margin float64
}

// Options configures a Layout
type Options struct {
	PageSize   string
	Margin     float64
	Threshold  float64
	RowHeight  float64
	FontFamily string
	Theme      Theme
}

// OptionsFromConfig maps the render section of the configuration
func OptionsFromConfig(cfg config.RenderConfig) Options {
	return Options{
		PageSize:   cfg.PageSize,
		Margin:     cfg.Margin,
		Threshold:  cfg.BottomThreshold,
		RowHeight:  cfg.RowHeight,
		FontFamily: cfg.FontFamily,
		Theme:      DefaultTheme,
	}
}

// Layout is the drawing context threaded through a single document build.
// It is not safe for concurrent use.
type Layout struct {
	doc  *fpdf.Fpdf
	opts Options
	page Page
	y    float64

	header      func()
	decorations []func(*Layout)
}

// New creates a landscape document with no pages yet
func New(opts Options) *Layout {
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "Helvetica"
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = 18
	}
	if opts.Threshold < 0 {
		opts.Threshold = DefaultThreshold
	}

	doc := fpdf.New("L", "pt", opts.PageSize, "")
	doc.SetMargins(opts.Margin, opts.Margin, opts.Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCellMargin(cellInset)
	doc.AliasNbPages("")
	doc.SetFont(opts.FontFamily, FontRegular, defaultFontSize)

	w, h := doc.GetPageSize()
	return &Layout{
		doc:  doc,
		opts: opts,
		page: Page{Width: w, Height: h, Margin: opts.Margin},
		y:    opts.Margin,
	}
}

// PDF exposes the underlying document for image and shape drawing
func (l *Layout) PDF() *fpdf.Fpdf { return l.doc }

func (l *Layout) Options() Options { return l.opts }

func (l *Layout) Theme() Theme { return l.opts.Theme }

func (l *Layout) Page() Page { return l.page }

func (l *Layout) PageCount() int { return l.doc.PageCount() }

// Y is the current cursor position
func (l *Layout) Y() float64 { return l.y }

// Left is the x of the left margin
func (l *Layout) Left() float64 { return l.opts.Margin }

// ContentWidth is the width between the margins
func (l *Layout) ContentWidth() float64 { return l.page.Width - 2*l.opts.Margin }

// Remaining is the vertical space between the cursor and the bottom margin
func (l *Layout) Remaining() float64 {
	return l.page.Height - l.opts.Margin - l.y
}

// SetHeader registers the callback that redraws a table header on each new page.
// Only one header is active at a time.
func (l *Layout) SetHeader(fn func()) { l.header = fn }

// ClearHeader stops header repetition
func (l *Layout) ClearHeader() { l.header = nil }

// OnNewPage adds a decoration painted on every page after the background fill
func (l *Layout) OnNewPage(fn func(*Layout)) {
	l.decorations = append(l.decorations, fn)
}

// BeginPage starts a new page: background, decorations, then the active header
func (l *Layout) BeginPage() Page {
	l.doc.AddPage()
	w, h := l.doc.GetPageSize()
	l.page = Page{
		Number: l.doc.PageNo(),
		Width:  w,
		Height: h,
		Margin: l.opts.Margin,
	}
	l.y = l.opts.Margin

	bg := l.opts.Theme.Background
	l.doc.SetFillColor(bg.R, bg.G, bg.B)
	l.doc.Rect(0, 0, w, h, "F")

	for _, decorate := range l.decorations {
		decorate(l)
	}

	if l.header != nil {
		l.header()
	}
	return l.page
}

// EnsureSpace returns the current page when height fits above the bottom
// threshold, otherwise it begins a new page.
func (l *Layout) EnsureSpace(height float64) Page {
	if l.page.Number == 0 || l.Remaining() < height+l.opts.Threshold {
		return l.BeginPage()
	}
	return l.page
}

// EnsureRoom begins a new page only when height does not fit above the bottom
// margin. Free-standing blocks such as totals and notes use it; table rows keep
// the threshold through EnsureSpace.
func (l *Layout) EnsureRoom(height float64) Page {
	if l.page.Number == 0 || l.Remaining() < height {
		return l.BeginPage()
	}
	return l.page
}

// Advance moves the cursor down
func (l *Layout) Advance(height float64) {
	l.y += height
}

// SetFooter installs the page footer: left text plus "Page N of M"
func (l *Layout) SetFooter(left string) {
	l.doc.SetFooterFunc(func() {
		muted := l.opts.Theme.Muted
		y := l.page.Height - l.opts.Margin/2 - 8
		l.doc.SetFont(l.opts.FontFamily, FontRegular, 7)
		l.doc.SetTextColor(muted.R, muted.G, muted.B)

		l.doc.SetXY(l.opts.Margin, y)
		l.doc.CellFormat(l.ContentWidth()/2, 10, sanitize.Encode(left), "", 0, AlignLeft, false, 0, "")

		l.doc.SetXY(l.opts.Margin+l.ContentWidth()/2, y)
		page := "Page " + strconv.Itoa(l.doc.PageNo()) + " of {nb}"
		l.doc.CellFormat(l.ContentWidth()/2, 10, page, "", 0, AlignRight, false, 0, "")
	})
}

// SetMetadata fills the document information dictionary
func (l *Layout) SetMetadata(title, author, creator string, created time.Time) {
	l.doc.SetTitle(sanitize.Safe(title), true)
	l.doc.SetAuthor(sanitize.Safe(author), true)
	l.doc.SetCreator(sanitize.Safe(creator), true)
	if !created.IsZero() {
		l.doc.SetCreationDate(created)
	}
}

// SetFont selects the document font family with the given style and size
func (l *Layout) SetFont(style string, size float64) {
	l.doc.SetFont(l.opts.FontFamily, style, size)
}

func (l *Layout) SetTextColor(c Color) { l.doc.SetTextColor(c.R, c.G, c.B) }

func (l *Layout) SetFillColor(c Color) { l.doc.SetFillColor(c.R, c.G, c.B) }

func (l *Layout) SetDrawColor(c Color) { l.doc.SetDrawColor(c.R, c.G, c.B) }

// TextCell draws text in a box at (x, cursor) without moving the cursor.
// Text wider than w is truncated with an ellipsis.
func (l *Layout) TextCell(x, w, h float64, text, align string) {
	l.TextAt(x, 0, w, h, text, align)
}

// TextAt draws like TextCell but dy below the cursor. It is used for side by
// side blocks whose heights differ; the caller advances by the tallest one.
func (l *Layout) TextAt(x, dy, w, h float64, text, align string) {
	l.doc.SetXY(x, l.y+dy)
	l.doc.CellFormat(w, h, l.Fit(text, w-2*cellInset), "", 0, align, false, 0, "")
}

// Box paints a filled rectangle dy below the cursor
func (l *Layout) Box(x, dy, w, h float64, fill Color) {
	l.SetFillColor(fill)
	l.doc.Rect(x, l.y+dy, w, h, "F")
}

// FillCell paints a filled box and draws text in it without moving the cursor
func (l *Layout) FillCell(x, w, h float64, text, align string, fill Color) {
	l.SetFillColor(fill)
	l.doc.SetXY(x, l.y)
	l.doc.CellFormat(w, h, l.Fit(text, w-2*cellInset), "", 0, align, true, 0, "")
}

// Line draws a full-width text line at the cursor and advances by h
func (l *Layout) Line(text string, h float64, align string) {
	l.EnsureSpace(h)
	l.TextCell(l.Left(), l.ContentWidth(), h, text, align)
	l.Advance(h)
}

// TextBlock wraps text to width w starting at x, paginating line by line,
// and returns the total height drawn.
func (l *Layout) TextBlock(x, w, lineHeight float64, text string) float64 {
	var drawn float64
	for _, paragraph := range strings.Split(text, "\n") {
		lines := l.doc.SplitLines([]byte(sanitize.Encode(paragraph)), w-2*cellInset)
		if len(lines) == 0 {
			lines = [][]byte{nil}
		}
		for _, line := range lines {
			l.EnsureRoom(lineHeight)
			l.doc.SetXY(x, l.y)
			l.doc.CellFormat(w, lineHeight, string(line), "", 0, AlignLeft, false, 0, "")
			l.Advance(lineHeight)
			drawn += lineHeight
		}
	}
	return drawn
}

// Rule draws a horizontal line across the content width at the cursor
func (l *Layout) Rule(c Color, width float64) {
	l.SetDrawColor(c)
	l.doc.SetLineWidth(width)
	l.doc.Line(l.Left(), l.y, l.Left()+l.ContentWidth(), l.y)
}

// StringWidth measures text in the current font after sanitization
func (l *Layout) StringWidth(text string) float64 {
	return l.doc.GetStringWidth(sanitize.Encode(text))
}

// Fit returns the encoded form of text, cut with an ellipsis to fit maxWidth
func (l *Layout) Fit(text string, maxWidth float64) string {
	encoded := sanitize.Encode(text)
	if maxWidth <= 0 || l.doc.GetStringWidth(encoded) <= maxWidth {
		return encoded
	}
	for n := len(encoded) - 1; n > 0; n-- {
		candidate := strings.TrimRight(encoded[:n], " ") + Ellipsis
		if l.doc.GetStringWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}

// Output finishes the document and writes it to w
func (l *Layout) Output(w io.Writer) error {
	if l.page.Number == 0 {
		l.BeginPage()
	}
	return l.doc.Output(w)
}

// Err returns the first error recorded by the underlying document
func (l *Layout) Err() error {
	return l.doc.Error()
}
