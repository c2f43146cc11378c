package dto

import (
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/domain/pdf"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/s3"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/validator"
)

// MaxBatchStatements caps the number of ledger statements in one batch request
const MaxBatchStatements = 50

// DocumentResponse describes a generated document stored in object storage
type DocumentResponse struct {
	// id is the document identifier, prefixed with doc_
	ID string `json:"id"`

	// type is one of invoice, ledger or report
	Type types.DocumentType `json:"type"`

	// path is the object key inside the bucket
	Path string `json:"path"`

	// url is the public or presigned link to the PDF
	URL string `json:"url"`

	// size_bytes is the length of the PDF
	SizeBytes int `json:"size_bytes"`
}

func NewDocumentResponse(id string, docType types.DocumentType, size int, res *s3.UploadResult) *DocumentResponse {
	return &DocumentResponse{
		ID:        id,
		Type:      docType,
		Path:      res.Path,
		URL:       res.PublicURL,
		SizeBytes: size,
	}
}

// DocumentURLResponse carries a fresh link to a stored document
type DocumentURLResponse struct {
	ID   string             `json:"id"`
	Type types.DocumentType `json:"type"`
	URL  string             `json:"presigned_url"`
}

// BatchLedgerRequest renders several customer statements in one call
type BatchLedgerRequest struct {
	// statements are rendered independently; one failure does not fail the others
	Statements []*pdf.LedgerData `json:"statements" validate:"required,min=1"`

	// upload stores every rendered statement and returns links instead of bytes
	Upload bool `json:"upload"`
}

func (r *BatchLedgerRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if len(r.Statements) > MaxBatchStatements {
		return ierr.NewErrorf("batch of %d statements exceeds the limit", len(r.Statements)).
			WithHintf("At most %d statements can be rendered in one request", MaxBatchStatements).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BatchLedgerItem is the outcome for one statement, in request order
type BatchLedgerItem struct {
	Index    int               `json:"index"`
	Customer string            `json:"customer,omitempty"`
	Document *DocumentResponse `json:"document,omitempty"`

	// pdf is set when upload was not requested; encoded as base64 in JSON
	PDF   []byte  `json:"pdf,omitempty"`
	Error *string `json:"error,omitempty"`
}

type BatchLedgerResponse struct {
	Items     []BatchLedgerItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// ParseDocumentType validates a document type taken from a path parameter
func ParseDocumentType(raw string) (types.DocumentType, error) {
	t := types.DocumentType(raw)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
