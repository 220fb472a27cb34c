package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/store"
)

type examResponse struct {
	models.Exam
	Subject *models.Subject `json:"subject,omitempty"`
}

func (s *Server) examResponse(e models.Exam) examResponse {
	return examResponse{Exam: e, Subject: s.subjectOf(e.SubjectID)}
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	exams := s.Store.Exams()
	out := make([]examResponse, 0, len(exams))
	for _, e := range exams {
		out = append(out, s.examResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID  string            `json:"subject_id"`
		Title      string            `json:"title"`
		Date       string            `json:"date"`
		Difficulty models.Difficulty `json:"difficulty"`
		Notes      string            `json:"notes"`
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
	if !req.Difficulty.Valid() {
		handleError(w, r, apperrors.NewValidationError("difficulty", "must be easy, medium or hard"))
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		handleError(w, r, apperrors.NewValidationError("date", "must be YYYY-MM-DD"))
		return
	}

	exam, err := s.Store.AddExam(r.Context(), models.Exam{
		SubjectID:  req.SubjectID,
		Title:      req.Title,
		Date:       date,
		Difficulty: req.Difficulty,
		Notes:      req.Notes,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.examResponse(exam))
}

func (s *Server) handleUpdateExam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID  *string            `json:"subject_id"`
		Title      *string            `json:"title"`
		Date       *string            `json:"date"`
		Difficulty *models.Difficulty `json:"difficulty"`
		Notes      *string            `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	upd := store.ExamUpdate{
		SubjectID:  req.SubjectID,
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Notes:      req.Notes,
	}
	if req.SubjectID != nil {
		if _, ok := s.Store.SubjectByID(*req.SubjectID); !ok {
			handleError(w, r, apperrors.NewValidationError("subject_id", "unknown subject"))
			return
		}
	}
	if req.Difficulty != nil && !req.Difficulty.Valid() {
		handleError(w, r, apperrors.NewValidationError("difficulty", "must be easy, medium or hard"))
		return
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			handleError(w, r, apperrors.NewValidationError("date", "must be YYYY-MM-DD"))
			return
		}
		upd.Date = &date
	}

	exam, err := s.Store.UpdateExam(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.examResponse(exam))
}

func (s *Server) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteExam(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
