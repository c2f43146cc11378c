package pdf

import (
	"context"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/asset"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/org"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/layout"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePdf(ctx context.Context, data *pdf.InvoiceData) ([]byte, error)
	RenderLedgerPdf(ctx context.Context, data *pdf.LedgerData) ([]byte, error)
	RenderReportPdf(ctx context.Context, data *pdf.ReportData) ([]byte, error)
}

// OrgProfileProvider returns the cached organization profile, nil when none was ever fetched
type OrgProfileProvider interface {
	Get(ctx context.Context, forceRefresh bool) *org.Profile
}

// WatermarkEmbedder resolves a watermark reference for a page size
type WatermarkEmbedder interface {
	Embed(ctx context.Context, ref string, pageWidth, pageHeight float64) (*asset.Watermark, bool)
}

type service struct {
	config   *config.Configuration
	layout   layout.Options
	profiles OrgProfileProvider
	embedder WatermarkEmbedder
	clock    types.Clock
	logger   *logger.Logger
}

// NewGenerator creates a new PDF service
func NewGenerator(
	config *config.Configuration,
	profiles OrgProfileProvider,
	embedder WatermarkEmbedder,
	clock types.Clock,
	logger *logger.Logger,
) Generator {
	if clock == nil {
		clock = types.SystemClock()
	}
	return &service{
		config:   config,
		layout:   layout.OptionsFromConfig(config.Render),
		profiles: profiles,
		embedder: embedder,
		clock:    clock,
		logger:   logger,
	}
}

// RenderInvoicePdf implements Generator.RenderInvoicePdf
func (s *service) RenderInvoicePdf(ctx context.Context, data *pdf.InvoiceData) ([]byte, error) {
	doc, err := s.renderInvoice(ctx, data)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// RenderLedgerPdf implements Generator.RenderLedgerPdf
func (s *service) RenderLedgerPdf(ctx context.Context, data *pdf.LedgerData) ([]byte, error) {
	doc, err := s.renderLedger(ctx, data)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// RenderReportPdf implements Generator.RenderReportPdf
func (s *service) RenderReportPdf(ctx context.Context, data *pdf.ReportData) ([]byte, error) {
	doc, err := s.renderReport(ctx, data)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// orgProfile picks the override, then the cache, then a placeholder
func (s *service) orgProfile(ctx context.Context, override *org.Profile) *org.Profile {
	if override != nil && override.Name != "" {
		return override
	}
	if s.profiles != nil {
		if profile := s.profiles.Get(ctx, false); profile != nil {
			return profile
		}
	}
	s.logger.Debugw("using placeholder organization profile")
	return &org.Profile{Name: s.config.Render.PlaceholderOrgName}
}
