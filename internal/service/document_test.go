package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api/dto"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/s3"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/sentry"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/testutil"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockGenerator struct {
	mock.Mock
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (m *mockGenerator) RenderInvoicePdf(ctx context.Context, data *pdf.InvoiceData) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockGenerator) RenderLedgerPdf(ctx context.Context, data *pdf.LedgerData) ([]byte, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockGenerator) RenderReportPdf(ctx context.Context, data *pdf.ReportData) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadDocument(ctx context.Context, document *s3.Document) (*s3.UploadResult, error) {
	args := m.Called(ctx, document)
	res, _ := args.Get(0).(*s3.UploadResult)
	return res, args.Error(1)
}

func (m *mockStorage) GetPresignedUrl(ctx context.Context, id string, docType types.DocumentType) (string, error) {
	args := m.Called(ctx, id, docType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) GetDocument(ctx context.Context, id string, docType types.DocumentType) ([]byte, error) {
	args := m.Called(ctx, id, docType)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockStorage) Exists(ctx context.Context, id string, docType types.DocumentType) (bool, error) {
	args := m.Called(ctx, id, docType)
	return args.Bool(0), args.Error(1)
}

type DocumentServiceSuite struct {
	suite.Suite
	ctx       context.Context
	cfg       *config.Configuration
	generator *mockGenerator
	storage   *mockStorage
	service   DocumentService
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.cfg.Render.BatchConcurrency = 2
	s.generator = new(mockGenerator)
	s.storage = new(mockStorage)
	s.service = s.newService(s.storage)
}

func (s *DocumentServiceSuite) newService(storage s3.Service) DocumentService {
	log := logger.NewNoopLogger()
	return NewDocumentService(NewServiceParams(
		log,
		s.cfg,
		s.generator,
		storage,
		sentry.NewSentryService(s.cfg, log),
	))
}

func statement(name string) *pdf.LedgerData {
	return &pdf.LedgerData{Customer: &pdf.Customer{Name: name}}
}

func (s *DocumentServiceSuite) TestRenderPassesThrough() {
	inv := &pdf.InvoiceData{Invoice: &pdf.Invoice{InvoiceNumber: "INV-1"}}
	s.generator.On("RenderInvoicePdf", mock.Anything, inv).Return([]byte("%PDF-invoice"), nil).Once()

	out, err := s.service.RenderInvoice(s.ctx, inv)
	s.Require().NoError(err)
	s.Equal([]byte("%PDF-invoice"), out)

	report := &pdf.ReportData{}
	fail := ierr.NewError("bad").WithHint("Sales summary is required").Mark(ierr.ErrValidation)
	s.generator.On("RenderReportPdf", mock.Anything, report).Return(nil, fail).Once()

	out, err = s.service.RenderReport(s.ctx, report)
	s.Nil(out)
	s.True(ierr.IsValidation(err))
	s.generator.AssertExpectations(s.T())
}

func (s *DocumentServiceSuite) TestPublish() {
	s.storage.On("UploadDocument", mock.Anything, mock.MatchedBy(func(d *s3.Document) bool {
		return strings.HasPrefix(d.ID, "doc_") && d.Type == types.DocumentTypeLedger && d.Kind == s3.DocumentKindPdf
	})).Return(&s3.UploadResult{Path: "ledger/doc_x.pdf", PublicURL: "https://cdn/ledger/doc_x.pdf"}, nil).Once()

	res, err := s.service.Publish(s.ctx, types.DocumentTypeLedger, []byte("%PDF-1.3"))
	s.Require().NoError(err)
	s.True(strings.HasPrefix(res.ID, "doc_"))
	s.Equal("ledger/doc_x.pdf", res.Path)
	s.Equal("https://cdn/ledger/doc_x.pdf", res.URL)
	s.Equal(8, res.SizeBytes)
	s.storage.AssertExpectations(s.T())
}

func (s *DocumentServiceSuite) TestPublishRejects() {
	_, err := s.service.Publish(s.ctx, "receipt", []byte("x"))
	s.True(ierr.IsValidation(err))

	_, err = s.service.Publish(s.ctx, types.DocumentTypeInvoice, nil)
	s.True(ierr.IsValidation(err))

	_, err = s.newService(nil).Publish(s.ctx, types.DocumentTypeInvoice, []byte("x"))
	s.True(ierr.IsInvalidOperation(err))

	s.storage.AssertNotCalled(s.T(), "UploadDocument", mock.Anything, mock.Anything)
}

func (s *DocumentServiceSuite) TestGetDocumentURL() {
	s.storage.On("Exists", mock.Anything, "doc_1", types.DocumentTypeInvoice).Return(true, nil).Once()
	s.storage.On("GetPresignedUrl", mock.Anything, "doc_1", types.DocumentTypeInvoice).Return("https://signed", nil).Once()

	res, err := s.service.GetDocumentURL(s.ctx, types.DocumentTypeInvoice, "doc_1")
	s.Require().NoError(err)
	s.Equal("https://signed", res.URL)

	s.storage.On("Exists", mock.Anything, "doc_2", types.DocumentTypeInvoice).Return(false, nil).Once()
	_, err = s.service.GetDocumentURL(s.ctx, types.DocumentTypeInvoice, "doc_2")
	s.True(ierr.IsNotFound(err))
}

func (s *DocumentServiceSuite) TestRenderLedgerBatch() {
	good := []*pdf.LedgerData{statement("A"), statement("B"), statement("C"), statement("D"), statement("E")}
	bad := statement("Broken")
	fail := ierr.NewError("negative").WithHint("Transaction amounts must not be negative").Mark(ierr.ErrValidation)

	for _, st := range good {
		s.generator.On("RenderLedgerPdf", mock.Anything, st).Return([]byte("%PDF-"+st.Customer.Name), nil).Once()
	}
	s.generator.On("RenderLedgerPdf", mock.Anything, bad).Return(nil, fail).Once()

	req := &dto.BatchLedgerRequest{Statements: append(append([]*pdf.LedgerData{}, good[:2]...), append([]*pdf.LedgerData{bad}, good[2:]...)...)}
	res, err := s.service.RenderLedgerBatch(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(5, res.Succeeded)
	s.Equal(1, res.Failed)
	s.Require().Len(res.Items, 6)
	for i, item := range res.Items {
		s.Equal(i, item.Index)
	}
	s.Equal("Broken", res.Items[2].Customer)
	s.Require().NotNil(res.Items[2].Error)
	s.Equal("Transaction amounts must not be negative", *res.Items[2].Error)
	s.Equal([]byte("%PDF-A"), res.Items[0].PDF)
	s.Equal([]byte("%PDF-E"), res.Items[5].PDF)
	s.LessOrEqual(s.generator.peak.Load(), int32(2))
	s.generator.AssertExpectations(s.T())
}

func (s *DocumentServiceSuite) TestRenderLedgerBatchUpload() {
	st := statement("A")
	s.generator.On("RenderLedgerPdf", mock.Anything, st).Return([]byte("%PDF-A"), nil).Once()
	s.storage.On("UploadDocument", mock.Anything, mock.Anything).
		Return(&s3.UploadResult{Path: "ledger/doc.pdf", PublicURL: "https://cdn/ledger/doc.pdf"}, nil).Once()

	res, err := s.service.RenderLedgerBatch(s.ctx, &dto.BatchLedgerRequest{Statements: []*pdf.LedgerData{st}, Upload: true})
	s.Require().NoError(err)
	s.Require().NotNil(res.Items[0].Document)
	s.Nil(res.Items[0].PDF)
	s.Equal("https://cdn/ledger/doc.pdf", res.Items[0].Document.URL)

	_, err = s.newService(nil).RenderLedgerBatch(s.ctx, &dto.BatchLedgerRequest{Statements: []*pdf.LedgerData{st}, Upload: true})
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DocumentServiceSuite) TestRenderLedgerBatchValidation() {
	_, err := s.service.RenderLedgerBatch(s.ctx, &dto.BatchLedgerRequest{})
	s.True(ierr.IsValidation(err))

	many := make([]*pdf.LedgerData, dto.MaxBatchStatements+1)
	for i := range many {
		many[i] = statement("X")
	}
	_, err = s.service.RenderLedgerBatch(s.ctx, &dto.BatchLedgerRequest{Statements: many})
	s.True(ierr.IsValidation(err))

	_, err = s.service.RenderLedgerBatch(s.ctx, nil)
	s.True(ierr.IsValidation(err))
}
