package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/config"
	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/AntarMukhopadhyaya/med-bill-sub000/internal/logger"
	domainTypes "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

type Service interface {
	UploadDocument(ctx context.Context, document *Document) (*UploadResult, error)
	GetPresignedUrl(ctx context.Context, id string, docType domainTypes.DocumentType) (string, error)
	GetDocument(ctx context.Context, id string, docType domainTypes.DocumentType) ([]byte, error)
	Exists(ctx context.Context, id string, docType domainTypes.DocumentType) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
	logger *logger.Logger
}

// NewService returns nil when storage is disabled
func NewService(cfg *config.Configuration, logger *logger.Logger) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3.Region)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return newService(s3.NewFromConfig(awsCfg), &cfg.S3, logger), nil
}

func newService(client *s3.Client, cfg *config.S3Config, logger *logger.Logger) *s3ServiceImpl {
	return &s3ServiceImpl{client: client, config: cfg, logger: logger}
}

func (s *s3ServiceImpl) getObjectKey(id string, docType domainTypes.DocumentType) (string, error) {
	if err := docType.Validate(); err != nil {
		return "", err
	}
	if id == "" || strings.ContainsAny(id, "/\\") {
		return "", ierr.NewErrorf("invalid document id: %q", id).
			WithHint("Document ids must be non-empty and contain no path separators").
			Mark(ierr.ErrValidation)
	}

	key := fmt.Sprintf("%s/%s.pdf", docType, id)
	if prefix := strings.Trim(s.config.KeyPrefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key, nil
}

func (s *s3ServiceImpl) getContentType(docKind DocumentKind) string {
	switch docKind {
	case DocumentKindPdf:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (s *s3ServiceImpl) presignExpiry() time.Duration {
	duration, err := time.ParseDuration(s.config.PresignExpiryDuration)
	if err != nil || duration <= 0 {
		return defaultPresignExpiryDuration
	}
	return duration
}

// Exists implements S3Service.
func (s *s3ServiceImpl) Exists(ctx context.Context, id string, docType domainTypes.DocumentType) (bool, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		var nsk *types.NoSuchKey
		var nske *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nske) {
			return false, nil
		}
		return false, ierr.WithError(err).WithHint("failed to check if document exists").
			Mark(ierr.ErrHTTPClient)
	}

	return true, nil
}

// GetPresignedUrl implements S3Service.
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, id string, docType domainTypes.DocumentType) (string, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return "", err
	}
	return s.presign(ctx, key)
}

func (s *s3ServiceImpl) presign(ctx context.Context, key string) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiry()))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}

// publicURL prefers the configured public base and falls back to a presigned link
func (s *s3ServiceImpl) publicURL(ctx context.Context, key string) (string, error) {
	if base := strings.TrimRight(s.config.PublicBaseURL, "/"); base != "" {
		return base + "/" + key, nil
	}
	return s.presign(ctx, key)
}

// UploadDocument implements S3Service.
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) (*UploadResult, error) {
	key, err := s.getObjectKey(document.ID, document.Type)
	if err != nil {
		return nil, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(document.Data),
		ContentType: aws.String(s.getContentType(document.Kind)),
	})
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	url, err := s.publicURL(ctx, key)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("uploaded document",
		"document_id", document.ID,
		"type", document.Type,
		"key", key,
		"size", len(document.Data),
	)

	return &UploadResult{Path: key, PublicURL: url}, nil
}

// GetDocument implements S3Service.
func (s *s3ServiceImpl) GetDocument(ctx context.Context, id string, docType domainTypes.DocumentType) ([]byte, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ierr.WithError(err).WithHintf("document %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("failed to get document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	defer result.Body.Close()

	return io.ReadAll(result.Body)
}
