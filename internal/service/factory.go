package service

import (
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/s3"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	PDFGenerator pdf.Generator

	// S3 is nil when object storage is disabled
	S3     s3.Service
	Sentry *sentry.Service
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	pdfGenerator pdf.Generator,
	s3Service s3.Service,
	sentryService *sentry.Service,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		PDFGenerator: pdfGenerator,
		S3:           s3Service,
		Sentry:       sentryService,
	}
}
