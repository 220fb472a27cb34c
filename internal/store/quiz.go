package store

import (
	"context"

	"github.com/samber/lo"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/models"
)

// Quizzes returns the stored quiz history, newest first.
func (s *Store) Quizzes() []models.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state).Quizzes
}

// AddQuiz stores a synthesized quiz at the head of the history.
func (s *Store) AddQuiz(ctx context.Context, quiz models.Quiz) (models.Quiz, error) {
	quiz.ID = newID()
	quiz.CreatedAt = now()
	err := s.mutate(ctx, func(state *models.State) error {
		state.Quizzes = append([]models.Quiz{quiz}, state.Quizzes...)
		return nil
	})
	if err != nil {
		return models.Quiz{}, err
	}
	return quiz, nil
}

// DeleteQuiz removes a quiz from the history.
func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	return s.mutate(ctx, func(state *models.State) error {
		before := len(state.Quizzes)
		state.Quizzes = lo.Filter(state.Quizzes, func(q models.Quiz, _ int) bool { return q.ID != id })
		if len(state.Quizzes) == before {
			return apperrors.NewNotFoundError("quiz", id)
		}
		return nil
	})
}
