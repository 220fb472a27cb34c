// Package quiz turns a flashcard deck into a multiple-choice quiz by
// sampling wrong answers from the sibling cards.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/kadarb/studyflash/internal/models"
)

// MinCards is the smallest deck a quiz can be built from: one right answer
// needs at least two real sibling answers before padding stops dominating.
const MinCards = 3

// maxQuestions caps quiz length at the first N cards in deck order.
const maxQuestions = 10

// optionCount is the fixed number of options per question.
const optionCount = 4

// ErrNotEnoughCards is returned for decks below MinCards.
var ErrNotEnoughCards = errors.New("deck needs at least 3 cards for a quiz")

// Generate builds one question per card (up to maxQuestions, deck order).
// Distractors are drawn without replacement from the other cards' answers and
// padded with placeholders when the deck is small. The rng drives sampling
// and option shuffling; tests inject a seeded source for exact assertions.
func Generate(deck models.FlashcardDeck, rng *rand.Rand) ([]models.QuizQuestion, error) {
	if len(deck.Cards) < MinCards {
		return nil, ErrNotEnoughCards
	}

	cards := deck.Cards
	if len(cards) > maxQuestions {
		cards = cards[:maxQuestions]
	}

	questions := make([]models.QuizQuestion, 0, len(cards))
	for _, card := range cards {
		var others []string
		for _, sibling := range deck.Cards {
			if sibling.ID != card.ID {
				others = append(others, sibling.Answer)
			}
		}

		wrong := sample(others, optionCount-1, rng)
		for len(wrong) < optionCount-1 {
			wrong = append(wrong, fmt.Sprintf("Incorrect answer %d", len(wrong)+1))
		}

		options := append([]string{card.Answer}, wrong...)
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		correct := 0
		for i, opt := range options {
			if opt == card.Answer {
				correct = i
				break
			}
		}

		questions = append(questions, models.QuizQuestion{
			ID:            uuid.NewString(),
			Question:      card.Question,
			Options:       options,
			CorrectAnswer: correct,
			Explanation:   card.Answer,
		})
	}
	return questions, nil
}

// sample draws up to n elements without replacement.
func sample(pool []string, n int, rng *rand.Rand) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}
