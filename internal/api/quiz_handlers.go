package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := s.Quiz.Generate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, q)
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Quizzes())
}

func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteQuiz(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
