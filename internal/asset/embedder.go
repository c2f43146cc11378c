package asset

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/httpclient"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/h2non/filetype"
	"github.com/samber/lo"
)

// DefaultOpacity is used when the configured opacity is zero
const DefaultOpacity = 0.08

var supportedMIME = []string{"image/png", "image/jpeg", "image/gif"}

// Embedder resolves watermark references into drawable images
type Embedder struct {
	resolver *Resolver
	client   httpclient.Client
	opacity  float64
	logger   *logger.Logger
}

func NewEmbedder(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) *Embedder {
	opacity := cfg.Assets.Opacity
	if opacity <= 0 {
		opacity = DefaultOpacity
	}
	return &Embedder{
		resolver: NewResolver(cfg.Assets.Dir),
		client:   client,
		opacity:  opacity,
		logger:   log,
	}
}

// Embed loads and decodes ref and sizes it for a page of pageW x pageH.
// ref is an http(s) URL, "bundled:<name>" or a bare asset name.
// Any failure is logged and reported as ok == false; it never aborts rendering.
func (e *Embedder) Embed(ctx context.Context, ref string, pageW, pageH float64) (*Watermark, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}

	data, err := e.load(ctx, ref)
	if err != nil {
		e.logger.Warnw("watermark unavailable, rendering without it", "ref", ref, "error", err)
		return nil, false
	}

	wm, err := decode(data)
	if err != nil {
		e.logger.Warnw("watermark could not be decoded, rendering without it", "ref", ref, "error", err)
		return nil, false
	}

	wm.Scale = scaleFor(wm.Width, wm.Height, pageW, pageH)
	wm.Opacity = e.opacity
	return wm, true
}

func (e *Embedder) load(ctx context.Context, ref string) ([]byte, error) {
	if !isRemote(ref) {
		return e.resolver.Load(ref)
	}

	if e.client == nil {
		return nil, ierr.NewError("no http client configured for remote assets").
			Mark(ierr.ErrInvalidOperation)
	}

	resp, err := e.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     ref,
		Headers: map[string]string{"Accept": "image/*"},
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewErrorf("unexpected status %d fetching asset", resp.StatusCode).
			Mark(ierr.ErrHTTPClient)
	}
	return resp.Body, nil
}

// decode sniffs the content, decodes it and re-encodes it as an 8-bit
// non-interlaced RGBA PNG, which fpdf can embed regardless of the source format.
func decode(data []byte) (*Watermark, error) {
	kind, err := filetype.Match(data)
	if err != nil || !lo.Contains(supportedMIME, kind.MIME.Value) {
		return nil, ierr.NewErrorf("unsupported asset type %q", kind.MIME.Value).
			WithHint("Watermarks must be PNG, JPEG or GIF images").
			Mark(ierr.ErrValidation)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Watermark image is corrupt").
			Mark(ierr.ErrValidation)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ierr.NewError("empty watermark image").
			Mark(ierr.ErrValidation)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to normalize watermark image").
			Mark(ierr.ErrSystem)
	}

	return &Watermark{
		png:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
