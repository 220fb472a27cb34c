package store

import (
	"context"

	"github.com/kadarb/studyflash/internal/models"
)

// Messages returns the chat log in append order.
func (s *Store) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.state.Messages))
	copy(out, s.state.Messages)
	return out
}

// AddMessage appends to the chat log.
func (s *Store) AddMessage(ctx context.Context, role, content string) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:        newID(),
		Role:      role,
		Content:   content,
		Timestamp: now(),
	}
	err := s.mutate(ctx, func(state *models.State) error {
		state.Messages = append(state.Messages, msg)
		return nil
	})
	if err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

// ClearMessages truncates the chat log.
func (s *Store) ClearMessages(ctx context.Context) error {
	return s.mutate(ctx, func(state *models.State) error {
		state.Messages = nil
		return nil
	})
}
