package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/store"
)

type deckResponse struct {
	models.FlashcardDeck
	Subject *models.Subject `json:"subject,omitempty"`
}

func (s *Server) deckResponse(d models.FlashcardDeck) deckResponse {
	return deckResponse{FlashcardDeck: d, Subject: s.subjectOf(d.SubjectID)}
}

type cardRequest struct {
	NoteID     string            `json:"note_id"`
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Difficulty models.Difficulty `json:"difficulty"`
}

func (c cardRequest) validate() error {
	if c.Question == "" {
		return apperrors.NewValidationError("question", "cannot be empty")
	}
	if c.Answer == "" {
		return apperrors.NewValidationError("answer", "cannot be empty")
	}
	if c.Difficulty != "" && !c.Difficulty.Valid() {
		return apperrors.NewValidationError("difficulty", "must be easy, medium or hard")
	}
	return nil
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks := s.Store.Decks()
	out := make([]deckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, s.deckResponse(d))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID string        `json:"subject_id"`
		NoteID    string        `json:"note_id"`
		Title     string        `json:"title"`
		Cards     []cardRequest `json:"cards"`
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

	cards := make([]models.Flashcard, 0, len(req.Cards))
	for _, c := range req.Cards {
		if err := c.validate(); err != nil {
			handleError(w, r, err)
			return
		}
		cards = append(cards, models.Flashcard{
			NoteID:     c.NoteID,
			Question:   c.Question,
			Answer:     c.Answer,
			Difficulty: c.Difficulty,
		})
	}

	deck, err := s.Store.AddDeck(r.Context(), req.SubjectID, req.NoteID, req.Title, cards)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.deckResponse(deck))
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID *string `json:"subject_id"`
		Title     *string `json:"title"`
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

	deck, err := s.Store.UpdateDeck(r.Context(), chi.URLParam(r, "id"), store.DeckUpdate{
		SubjectID: req.SubjectID,
		Title:     req.Title,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.deckResponse(deck))
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteDeck(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Store.AddCard(r.Context(), chi.URLParam(r, "id"), models.Flashcard{
		NoteID:     req.NoteID,
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question   *string            `json:"question"`
		Answer     *string            `json:"answer"`
		Difficulty *models.Difficulty `json:"difficulty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Difficulty != nil && !req.Difficulty.Valid() {
		handleError(w, r, apperrors.NewValidationError("difficulty", "must be easy, medium or hard"))
		return
	}

	card, err := s.Store.UpdateCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cardID"), store.CardUpdate{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteCard(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cardID")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordCardResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Store.RecordCardResult(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cardID"), req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}
