package api

import (
	"net/http"
	"strings"

	"github.com/kadarb/studyflash/internal/ai"
	apperrors "github.com/kadarb/studyflash/internal/errors"
)

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		handleError(w, r, apperrors.NewValidationError("prompt", "cannot be empty"))
		return
	}

	url, err := s.Images.Generate(r.Context(), req.Prompt)
	if err == ai.ErrNoImageToken {
		handleError(w, r, apperrors.NewBadRequestError("no REPLICATE_API_TOKEN configured on the server"))
		return
	}
	if err != nil {
		handleError(w, r, apperrors.NewUpstreamError("image generation", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"image_url": url,
		"prompt":    req.Prompt,
	})
}
