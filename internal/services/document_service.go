package services

import (
	"context"
	"mime"
	"net/http"
	"path/filepath"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/textextract"
)

// MaxDocumentSize caps uploads at 10 MB.
const MaxDocumentSize = 10 << 20

// DocumentService extracts plain text from uploaded documents.
type DocumentService interface {
	Extract(ctx context.Context, filename string, data []byte) (*textextract.Result, error)
}

type documentService struct {
	tika *textextract.Client
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(tika *textextract.Client) DocumentService {
	return &documentService{tika: tika}
}

func (s *documentService) Extract(ctx context.Context, filename string, data []byte) (*textextract.Result, error) {
	log := logger.FromContext(ctx)

	if len(data) == 0 {
		return nil, apperrors.NewValidationError("file", "cannot be empty")
	}
	if len(data) > MaxDocumentSize {
		return nil, apperrors.NewValidationError("file", "exceeds the 10 MB limit")
	}

	contentType := detectContentType(filename, data)
	if !textextract.IsSupported(contentType) {
		return nil, apperrors.NewValidationError("file", "unsupported document type "+contentType)
	}

	result, err := s.tika.Extract(ctx, data, contentType)
	if err != nil {
		log.Error("text extraction failed: %v", err)
		return nil, apperrors.NewUpstreamError("text extraction", err)
	}
	return result, nil
}

func detectContentType(filename string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
