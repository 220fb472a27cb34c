package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/state", s.handleState)
		r.Put("/state/user", s.handleSetUserName)
		r.Put("/state/tab", s.handleSetActiveTab)
		r.Get("/subjects", s.handleSubjects)
		r.Get("/snapshots", s.handleSnapshots)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.handleListNotes)
			r.Post("/", s.handleCreateNote)
			r.Put("/{id}", s.handleUpdateNote)
			r.Delete("/{id}", s.handleDeleteNote)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Put("/{id}", s.handleUpdateDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
			r.Post("/{id}/cards", s.handleAddCard)
			r.Put("/{id}/cards/{cardID}", s.handleUpdateCard)
			r.Delete("/{id}/cards/{cardID}", s.handleDeleteCard)
			r.Post("/{id}/cards/{cardID}/result", s.handleRecordCardResult)
			r.Post("/{id}/quiz", s.handleGenerateQuiz)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", s.handleListQuizzes)
			r.Delete("/{id}", s.handleDeleteQuiz)
		})

		r.Route("/exams", func(r chi.Router) {
			r.Get("/", s.handleListExams)
			r.Post("/", s.handleCreateExam)
			r.Put("/{id}", s.handleUpdateExam)
			r.Delete("/{id}", s.handleDeleteExam)
		})

		r.Route("/plan", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Get("/upcoming", s.handleUpcomingTasks)
			r.Post("/generate", s.handleGeneratePlan)
			r.Post("/tasks/{id}/toggle", s.handleToggleTask)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/messages", s.handleListMessages)
			r.Delete("/messages", s.handleClearMessages)
			r.Post("/", s.handleSendMessage)
			r.Post("/flashcards", s.handleSaveExtracted)
		})

		r.Post("/documents/extract", s.handleExtractDocument)
		r.Post("/images/generate", s.handleGenerateImage)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
