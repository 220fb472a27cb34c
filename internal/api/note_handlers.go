package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/store"
)

type noteResponse struct {
	models.Note
	Subject *models.Subject `json:"subject,omitempty"`
}

func (s *Server) noteResponse(n models.Note) noteResponse {
	return noteResponse{Note: n, Subject: s.subjectOf(n.SubjectID)}
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes := s.Store.Notes()
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, s.noteResponse(n))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID string `json:"subject_id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
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

	note, err := s.Store.AddNote(r.Context(), req.SubjectID, req.Title, req.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.noteResponse(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID *string `json:"subject_id"`
		Title     *string `json:"title"`
		Content   *string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.SubjectID != nil {
		if _, ok := s.Store.SubjectByID(*req.SubjectID); !ok {
			handleError(w, r, apperrors.NewValidationError("subject_id", "unknown subject"))
			return
		}
	}

	note, err := s.Store.UpdateNote(r.Context(), chi.URLParam(r, "id"), store.NoteUpdate{
		SubjectID: req.SubjectID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.noteResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
