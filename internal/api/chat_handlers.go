package api

import (
	"net/http"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/extract"
	"github.com/kadarb/studyflash/internal/services"
)

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Messages())
}

func (s *Server) handleClearMessages(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.ClearMessages(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string                     `json:"content"`
		Document *services.UploadedDocument `json:"document"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Content == "" {
		handleError(w, r, apperrors.NewValidationError("content", "cannot be empty"))
		return
	}

	reply, err := s.Chat.Send(r.Context(), req.Content, req.Document)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleSaveExtracted(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID string         `json:"subject_id"`
		NoteID    string         `json:"note_id"`
		Title     string         `json:"title"`
		Cards     []extract.Card `json:"cards"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Title == "" {
		handleError(w, r, apperrors.NewValidationError("title", "cannot be empty"))
		return
	}
	if _, ok := s.Store.SubjectByID(req.SubjectID); !ok {
		handleError(w, r, apperrors.NewValidationError("subject_id", "unknown subject"))
		return
	}

	deck, err := s.Chat.SaveExtracted(r.Context(), req.SubjectID, req.NoteID, req.Title, req.Cards)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.deckResponse(deck))
}
