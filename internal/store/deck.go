package store

import (
	"context"

	"github.com/samber/lo"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
)

// DeckUpdate is a partial update; nil fields are left untouched.
type DeckUpdate struct {
	SubjectID *string
	Title     *string
}

// CardUpdate is a partial update; nil fields are left untouched. Review
// counters are deliberately absent: only RecordCardResult moves them.
type CardUpdate struct {
	Question   *string
	Answer     *string
	Difficulty *models.Difficulty
}

// Decks returns all decks, newest first.
func (s *Store) Decks() []models.FlashcardDeck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state).Decks
}

// DeckByID returns a single deck with its cards.
func (s *Store) DeckByID(id string) (models.FlashcardDeck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range cloneState(s.state).Decks {
		if d.ID == id {
			return d, nil
		}
	}
	return models.FlashcardDeck{}, apperrors.NewNotFoundError("deck", id)
}

// AddDeck creates a deck. Any cards passed in get fresh ids and zeroed
// review counters; card order is preserved as given.
func (s *Store) AddDeck(ctx context.Context, subjectID, noteID, title string, cards []models.Flashcard) (models.FlashcardDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	deck := models.FlashcardDeck{
		ID:        newID(),
		SubjectID: subjectID,
		NoteID:    noteID,
		Title:     title,
		Cards:     make([]models.Flashcard, 0, len(cards)),
		CreatedAt: now(),
	}
	for _, card := range cards {
		card.ID = newID()
		card.TimesCorrect = 0
		card.TimesWrong = 0
		card.LastReviewed = nil
		if !card.Difficulty.Valid() {
			card.Difficulty = models.DifficultyMedium
		}
		deck.Cards = append(deck.Cards, card)
	}

	err := s.mutate(ctx, func(state *models.State) error {
		state.Decks = append([]models.FlashcardDeck{deck}, state.Decks...)
		return nil
	})
	if err != nil {
		return models.FlashcardDeck{}, err
	}
	log.Debug("deck added: id=%s cards=%d", deck.ID, len(deck.Cards))
	return deck, nil
}

// UpdateDeck merges the partial update into the deck.
func (s *Store) UpdateDeck(ctx context.Context, id string, upd DeckUpdate) (models.FlashcardDeck, error) {
	var updated models.FlashcardDeck
	err := s.mutate(ctx, func(state *models.State) error {
		deck := findDeck(state, id)
		if deck == nil {
			return apperrors.NewNotFoundError("deck", id)
		}
		if upd.SubjectID != nil {
			deck.SubjectID = *upd.SubjectID
		}
		if upd.Title != nil {
			deck.Title = *upd.Title
		}
		updated = *deck
		return nil
	})
	if err != nil {
		return models.FlashcardDeck{}, err
	}
	return updated, nil
}

// DeleteDeck removes the deck and its cards.
func (s *Store) DeleteDeck(ctx context.Context, id string) error {
	return s.mutate(ctx, func(state *models.State) error {
		before := len(state.Decks)
		state.Decks = lo.Filter(state.Decks, func(d models.FlashcardDeck, _ int) bool { return d.ID != id })
		if len(state.Decks) == before {
			return apperrors.NewNotFoundError("deck", id)
		}
		return nil
	})
}

// AddCard appends a card to the deck, preserving insertion order.
func (s *Store) AddCard(ctx context.Context, deckID string, card models.Flashcard) (models.Flashcard, error) {
	card.ID = newID()
	card.TimesCorrect = 0
	card.TimesWrong = 0
	card.LastReviewed = nil
	if !card.Difficulty.Valid() {
		card.Difficulty = models.DifficultyMedium
	}

	err := s.mutate(ctx, func(state *models.State) error {
		deck := findDeck(state, deckID)
		if deck == nil {
			return apperrors.NewNotFoundError("deck", deckID)
		}
		deck.Cards = append(deck.Cards, card)
		return nil
	})
	if err != nil {
		return models.Flashcard{}, err
	}
	return card, nil
}

// UpdateCard merges the partial update into the card.
func (s *Store) UpdateCard(ctx context.Context, deckID, cardID string, upd CardUpdate) (models.Flashcard, error) {
	var updated models.Flashcard
	err := s.mutate(ctx, func(state *models.State) error {
		card, err := findCard(state, deckID, cardID)
		if err != nil {
			return err
		}
		if upd.Question != nil {
			card.Question = *upd.Question
		}
		if upd.Answer != nil {
			card.Answer = *upd.Answer
		}
		if upd.Difficulty != nil {
			card.Difficulty = *upd.Difficulty
		}
		updated = *card
		return nil
	})
	if err != nil {
		return models.Flashcard{}, err
	}
	return updated, nil
}

// DeleteCard removes a card from its deck.
func (s *Store) DeleteCard(ctx context.Context, deckID, cardID string) error {
	return s.mutate(ctx, func(state *models.State) error {
		deck := findDeck(state, deckID)
		if deck == nil {
			return apperrors.NewNotFoundError("deck", deckID)
		}
		before := len(deck.Cards)
		deck.Cards = lo.Filter(deck.Cards, func(c models.Flashcard, _ int) bool { return c.ID != cardID })
		if len(deck.Cards) == before {
			return apperrors.NewNotFoundError("card", cardID)
		}
		return nil
	})
}

// RecordCardResult increments exactly one review counter and stamps
// last_reviewed. Counters only ever grow; deletion is the one way out.
func (s *Store) RecordCardResult(ctx context.Context, deckID, cardID string, correct bool) (models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	var updated models.Flashcard
	err := s.mutate(ctx, func(state *models.State) error {
		card, err := findCard(state, deckID, cardID)
		if err != nil {
			return err
		}
		if correct {
			card.TimesCorrect++
		} else {
			card.TimesWrong++
		}
		reviewed := now()
		card.LastReviewed = &reviewed
		updated = *card
		return nil
	})
	if err != nil {
		return models.Flashcard{}, err
	}
	log.Debug("card result recorded: card=%s correct=%t (%d/%d)",
		cardID, correct, updated.TimesCorrect, updated.TimesWrong)
	return updated, nil
}

func findDeck(state *models.State, id string) *models.FlashcardDeck {
	for i := range state.Decks {
		if state.Decks[i].ID == id {
			return &state.Decks[i]
		}
	}
	return nil
}

func findCard(state *models.State, deckID, cardID string) (*models.Flashcard, error) {
	deck := findDeck(state, deckID)
	if deck == nil {
		return nil, apperrors.NewNotFoundError("deck", deckID)
	}
	for i := range deck.Cards {
		if deck.Cards[i].ID == cardID {
			return &deck.Cards[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("card", cardID)
}
