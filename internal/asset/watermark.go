package asset

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// MaxPageFraction bounds the watermark to this share of page width and height
const MaxPageFraction = 0.65

const imageName = "watermark"

// Watermark is a decoded image ready to be painted on every page
type Watermark struct {
	png     []byte
	Width   int
	Height  int
	Scale   float64
	Opacity float64
}

// scaleFor returns min(0.65*pw/iw, 0.65*ph/ih)
func scaleFor(imgW, imgH int, pageW, pageH float64) float64 {
	return min(MaxPageFraction*pageW/float64(imgW), MaxPageFraction*pageH/float64(imgH))
}

// Size is the drawn width and height in page units
func (w *Watermark) Size() (float64, float64) {
	return float64(w.Width) * w.Scale, float64(w.Height) * w.Scale
}

// Draw paints the watermark centered on the current page of doc.
// The image is registered with the document on first use.
func (w *Watermark) Draw(doc *fpdf.Fpdf) {
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	if doc.GetImageInfo(imageName) == nil {
		doc.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(w.png))
	}

	pageW, pageH := doc.GetPageSize()
	dw, dh := w.Size()

	doc.SetAlpha(w.Opacity, "Normal")
	doc.ImageOptions(imageName, (pageW-dw)/2, (pageH-dh)/2, dw, dh, false, opts, 0, "")
	doc.SetAlpha(1, "Normal")
}
