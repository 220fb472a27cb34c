package services

import (
	"context"
	"math/rand"
	"sync"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/quiz"
	"github.com/kadarb/studyflash/internal/store"
)

// QuizService synthesizes quizzes from flashcard decks.
type QuizService interface {
	Generate(ctx context.Context, deckID string) (models.Quiz, error)
}

type quizService struct {
	store *store.Store
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewQuizService creates a QuizService. The random source is injected so
// tests can seed it and assert exact option ordering.
func NewQuizService(st *store.Store, src rand.Source) QuizService {
	return &quizService{store: st, rng: rand.New(src)}
}

func (s *quizService) Generate(ctx context.Context, deckID string) (models.Quiz, error) {
	log := logger.FromContext(ctx)

	deck, err := s.store.DeckByID(deckID)
	if err != nil {
		return models.Quiz{}, err
	}

	s.mu.Lock()
	questions, err := quiz.Generate(deck, s.rng)
	s.mu.Unlock()
	if err == quiz.ErrNotEnoughCards {
		return models.Quiz{}, apperrors.NewValidationError("deck", "needs at least 3 cards for a quiz")
	}
	if err != nil {
		return models.Quiz{}, apperrors.NewInternalError(err)
	}

	log.Debug("synthesized %d questions from deck %s", len(questions), deckID)
	return s.store.AddQuiz(ctx, models.Quiz{
		DeckID:    deck.ID,
		NoteID:    deck.NoteID,
		Title:     deck.Title,
		Questions: questions,
	})
}
