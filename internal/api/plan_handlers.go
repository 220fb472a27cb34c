package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kadarb/studyflash/internal/errors"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Tasks())
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.Plan.Regenerate(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			handleError(w, r, apperrors.NewValidationError("days", "must be a positive integer"))
			return
		}
		days = parsed
	}
	respondJSON(w, http.StatusOK, s.Plan.Upcoming(days))
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.Store.ToggleTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}
