package v1

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/api/dto"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/service"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/gin-gonic/gin"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type DocumentHandler struct {
	documentService service.DocumentService
	logger          *logger.Logger
}

func NewDocumentHandler(documentService service.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// RenderInvoice godoc
// @Summary Render an invoice PDF
// @Tags Documents
// @Accept json
// @Produce application/pdf
// @Param invoice body pdf.InvoiceData true "Invoice, customer and line items"
// @Param upload query bool false "Store the PDF and return its link instead of the bytes"
// @Success 200 {file} application/pdf
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /documents/invoice [post]
func (h *DocumentHandler) RenderInvoice(c *gin.Context) {
	var req pdf.InvoiceData
	if !h.bind(c, &req) {
		return
	}

	out, err := h.documentService.RenderInvoice(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, types.DocumentTypeInvoice, "invoice-"+req.Invoice.InvoiceNumber, out)
}

// RenderLedger godoc
// @Summary Render a customer account statement PDF
// @Tags Documents
// @Accept json
// @Produce application/pdf
// @Param ledger body pdf.LedgerData true "Customer, period and transactions"
// @Param upload query bool false "Store the PDF and return its link instead of the bytes"
// @Success 200 {file} application/pdf
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /documents/ledger [post]
func (h *DocumentHandler) RenderLedger(c *gin.Context) {
	var req pdf.LedgerData
	if !h.bind(c, &req) {
		return
	}

	out, err := h.documentService.RenderLedger(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, types.DocumentTypeLedger, "statement-"+req.Customer.Name, out)
}

// RenderReport godoc
// @Summary Render a business report PDF
// @Tags Documents
// @Accept json
// @Produce application/pdf
// @Param report body pdf.ReportData true "Report sections"
// @Param upload query bool false "Store the PDF and return its link instead of the bytes"
// @Success 200 {file} application/pdf
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /documents/report [post]
func (h *DocumentHandler) RenderReport(c *gin.Context) {
	var req pdf.ReportData
	if !h.bind(c, &req) {
		return
	}

	out, err := h.documentService.RenderReport(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, types.DocumentTypeReport, "report-"+req.Period.From.Format("2006-01-02"), out)
}

// RenderLedgerBatch godoc
// @Summary Render several account statements
// @Tags Documents
// @Accept json
// @Produce json
// @Param batch body dto.BatchLedgerRequest true "Statements to render"
// @Success 200 {object} dto.BatchLedgerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /documents/ledger/batch [post]
func (h *DocumentHandler) RenderLedgerBatch(c *gin.Context) {
	var req dto.BatchLedgerRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.documentService.RenderLedgerBatch(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetDocumentURL godoc
// @Summary Get a fresh link to a stored document
// @Tags Documents
// @Produce json
// @Param type path string true "invoice, ledger or report"
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentURLResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /documents/{type}/{id}/url [get]
func (h *DocumentHandler) GetDocumentURL(c *gin.Context) {
	docType, err := dto.ParseDocumentType(c.Param("type"))
	if err != nil {
		c.Error(err)
		return
	}

	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid document id").WithHint("invalid document id").Mark(ierr.ErrValidation))
		return
	}

	res, err := h.documentService.GetDocumentURL(c.Request.Context(), docType, id)
	if err != nil {
		h.logger.Errorw("failed to get document url", "error", err, "document_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *DocumentHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return false
	}
	return true
}

// respond either streams the PDF or, with ?upload=true, stores it and returns its link
func (h *DocumentHandler) respond(c *gin.Context, docType types.DocumentType, name string, out []byte) {
	if c.Query("upload") == "true" {
		res, err := h.documentService.Publish(c.Request.Context(), docType, out)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, res)
		return
	}

	filename := unsafeFilename.ReplaceAllString(name, "_") + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Header("Content-Length", strconv.Itoa(len(out)))
	c.Data(http.StatusOK, "application/pdf", out)
}
