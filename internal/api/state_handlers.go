package api

import (
	"net/http"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/models"
)

// subjectOf resolves a subject reference at read time. Subjects are never
// copied onto entities (they would go stale if the catalog ever changed).
func (s *Server) subjectOf(id string) *models.Subject {
	if subj, ok := s.Store.SubjectByID(id); ok {
		return &subj
	}
	return nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Snapshot())
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Subjects())
}

func (s *Server) handleSetUserName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Name == "" {
		handleError(w, r, apperrors.NewValidationError("name", "cannot be empty"))
		return
	}
	if err := s.Store.SetUserName(r.Context(), req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

func (s *Server) handleSetActiveTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Store.SetActiveTab(r.Context(), req.Tab); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"tab": req.Tab})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.Snapshots == nil {
		respondJSON(w, http.StatusOK, []struct{}{})
		return
	}
	snaps, err := s.Snapshots.Snapshots(r.Context(), 20)
	if err != nil {
		handleError(w, r, apperrors.NewInternalError(err))
		return
	}
	respondJSON(w, http.StatusOK, snaps)
}
