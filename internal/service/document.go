package service

import (
	"context"
	"strings"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api/dto"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/interfaces"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/s3"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/sentry"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

type DocumentService = interfaces.DocumentService

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{
		ServiceParams: params,
	}
}

func (s *documentService) RenderInvoice(ctx context.Context, data *pdf.InvoiceData) ([]byte, error) {
	params := map[string]interface{}{}
	if data != nil && data.Invoice != nil {
		params["invoice_number"] = data.Invoice.InvoiceNumber
		params["items"] = len(data.Items)
	}
	return s.render(ctx, types.DocumentTypeInvoice, params, func(ctx context.Context) ([]byte, error) {
		return s.PDFGenerator.RenderInvoicePdf(ctx, data)
	})
}

func (s *documentService) RenderLedger(ctx context.Context, data *pdf.LedgerData) ([]byte, error) {
	params := map[string]interface{}{}
	if data != nil {
		params["transactions"] = len(data.Transactions)
	}
	return s.render(ctx, types.DocumentTypeLedger, params, func(ctx context.Context) ([]byte, error) {
		return s.PDFGenerator.RenderLedgerPdf(ctx, data)
	})
}

func (s *documentService) RenderReport(ctx context.Context, data *pdf.ReportData) ([]byte, error) {
	return s.render(ctx, types.DocumentTypeReport, nil, func(ctx context.Context) ([]byte, error) {
		return s.PDFGenerator.RenderReportPdf(ctx, data)
	})
}

func (s *documentService) render(
	ctx context.Context,
	docType types.DocumentType,
	params map[string]interface{},
	fn func(ctx context.Context) ([]byte, error),
) ([]byte, error) {
	span, ctx := s.Sentry.StartRenderSpan(ctx, docType.String(), params)
	defer sentry.FinishSpan(span)

	out, err := fn(ctx)
	if err != nil {
		s.Logger.Errorw("failed to render document",
			"request_id", types.GetRequestID(ctx),
			"type", docType,
			"error", err,
		)
		if !ierr.IsValidation(err) {
			s.Sentry.CaptureException(err)
		}
		return nil, err
	}

	s.Logger.Infow("rendered document",
		"request_id", types.GetRequestID(ctx),
		"type", docType,
		"size", len(out),
	)
	return out, nil
}

func (s *documentService) storage() (s3.Service, error) {
	if s.S3 == nil {
		return nil, ierr.NewError("object storage is disabled").
			WithHint("Document storage is not configured on this server").
			Mark(ierr.ErrInvalidOperation)
	}
	return s.S3, nil
}

func (s *documentService) Publish(ctx context.Context, docType types.DocumentType, data []byte) (*dto.DocumentResponse, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ierr.NewError("empty document").
			WithHint("Cannot store an empty document").
			Mark(ierr.ErrValidation)
	}
	store, err := s.storage()
	if err != nil {
		return nil, err
	}

	span, ctx := s.Sentry.StartUploadSpan(ctx, docType.String(), len(data))
	defer sentry.FinishSpan(span)

	id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT)
	res, err := store.UploadDocument(ctx, s3.NewPdfDocument(id, data, docType))
	if err != nil {
		s.Logger.Errorw("failed to publish document", "type", docType, "document_id", id, "error", err)
		return nil, err
	}

	return dto.NewDocumentResponse(id, docType, len(data), res), nil
}

func (s *documentService) GetDocumentURL(ctx context.Context, docType types.DocumentType, id string) (*dto.DocumentURLResponse, error) {
	if err := docType.Validate(); err != nil {
		return nil, err
	}
	store, err := s.storage()
	if err != nil {
		return nil, err
	}

	exists, err := store.Exists(ctx, id, docType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ierr.NewErrorf("document %s not found", id).
			WithHint("Document not found").
			WithReportableDetails(map[string]any{"id": id, "type": docType}).
			Mark(ierr.ErrNotFound)
	}

	url, err := store.GetPresignedUrl(ctx, id, docType)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentURLResponse{ID: id, Type: docType, URL: url}, nil
}

// RenderLedgerBatch renders statements with bounded parallelism. Each
// statement succeeds or fails on its own; results keep request order.
func (s *documentService) RenderLedgerBatch(ctx context.Context, req *dto.BatchLedgerRequest) (*dto.BatchLedgerResponse, error) {
	if req == nil {
		return nil, ierr.NewError("missing batch request").
			WithHint("Request body is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Upload {
		if _, err := s.storage(); err != nil {
			return nil, err
		}
	}

	items := make([]dto.BatchLedgerItem, len(req.Statements))
	p := pool.New().WithMaxGoroutines(max(1, s.Config.Render.BatchConcurrency))
	for i, statement := range req.Statements {
		p.Go(func() {
			items[i] = s.renderBatchItem(ctx, i, statement, req.Upload)
		})
	}
	p.Wait()

	failed := lo.CountBy(items, func(item dto.BatchLedgerItem) bool {
		return item.Error != nil
	})

	s.Logger.Infow("rendered ledger batch",
		"request_id", types.GetRequestID(ctx),
		"statements", len(items),
		"failed", failed,
	)

	return &dto.BatchLedgerResponse{
		Items:     items,
		Succeeded: len(items) - failed,
		Failed:    failed,
	}, nil
}

func (s *documentService) renderBatchItem(ctx context.Context, index int, data *pdf.LedgerData, upload bool) dto.BatchLedgerItem {
	item := dto.BatchLedgerItem{Index: index}
	if data != nil && data.Customer != nil {
		item.Customer = data.Customer.Name
	}

	out, err := s.RenderLedger(ctx, data)
	if err != nil {
		item.Error = lo.ToPtr(displayError(err))
		return item
	}

	if !upload {
		item.PDF = out
		return item
	}

	doc, err := s.Publish(ctx, types.DocumentTypeLedger, out)
	if err != nil {
		item.Error = lo.ToPtr(displayError(err))
		return item
	}
	item.Document = doc
	return item
}

// displayError returns the first hint, falling back to the error text
func displayError(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return err.Error()
}
