package s3

import "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"

type Document struct {
	ID   string             `json:"id"`
	Data []byte             `json:"data"`
	Kind DocumentKind       `json:"kind"`
	Type types.DocumentType `json:"type"`
}

type DocumentKind string

const (
	DocumentKindPdf DocumentKind = "pdf"
)

func NewPdfDocument(id string, data []byte, docType types.DocumentType) *Document {
	return &Document{
		ID:   id,
		Data: data,
		Kind: DocumentKindPdf,
		Type: docType,
	}
}

// UploadResult locates a stored document
type UploadResult struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}
