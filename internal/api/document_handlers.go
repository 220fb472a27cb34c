package api

import (
	"io"
	"net/http"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/services"
)

func (s *Server) handleExtractDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxDocumentSize+1)

	if err := r.ParseMultipartForm(services.MaxDocumentSize); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, apperrors.NewValidationError("file", "missing upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handleError(w, r, apperrors.NewBadRequestError("failed to read upload"))
		return
	}

	result, err := s.Documents.Extract(r.Context(), header.Filename, data)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
