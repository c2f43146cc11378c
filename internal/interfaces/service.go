package interfaces

import (
	"context"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api/dto"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
)

// DocumentService defines the interface for document generation and delivery
type DocumentService interface {
	RenderInvoice(ctx context.Context, data *pdf.InvoiceData) ([]byte, error)
	RenderLedger(ctx context.Context, data *pdf.LedgerData) ([]byte, error)
	RenderReport(ctx context.Context, data *pdf.ReportData) ([]byte, error)
	RenderLedgerBatch(ctx context.Context, req *dto.BatchLedgerRequest) (*dto.BatchLedgerResponse, error)
	Publish(ctx context.Context, docType types.DocumentType, data []byte) (*dto.DocumentResponse, error)
	GetDocumentURL(ctx context.Context, docType types.DocumentType, id string) (*dto.DocumentURLResponse, error)
}
