package quiz_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/quiz"
)

func deckWithCards(n int) models.FlashcardDeck {
	deck := models.FlashcardDeck{ID: "deck-1", Title: "Test deck"}
	for i := 0; i < n; i++ {
		deck.Cards = append(deck.Cards, models.Flashcard{
			ID:       fmt.Sprintf("card-%d", i),
			Question: fmt.Sprintf("Question %d", i),
			Answer:   fmt.Sprintf("Answer %d", i),
		})
	}
	return deck
}

func TestGenerate_TooFewCards(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := quiz.Generate(deckWithCards(2), rng)
	assert.ErrorIs(t, err, quiz.ErrNotEnoughCards)

	_, err = quiz.Generate(models.FlashcardDeck{}, rng)
	assert.ErrorIs(t, err, quiz.ErrNotEnoughCards)
}

func TestGenerate_QuestionShape(t *testing.T) {
	deck := deckWithCards(5)
	rng := rand.New(rand.NewSource(42))

	questions, err := quiz.Generate(deck, rng)
	require.NoError(t, err)
	require.Len(t, questions, 5)

	for i, q := range questions {
		card := deck.Cards[i]
		assert.Equal(t, card.Question, q.Question)
		assert.NotEmpty(t, q.ID)
		require.Len(t, q.Options, 4)

		// Exactly one option is the correct answer and the index points at it.
		correct := 0
		for _, opt := range q.Options {
			if opt == card.Answer {
				correct++
			}
		}
		assert.Equal(t, 1, correct)
		assert.Equal(t, card.Answer, q.Options[q.CorrectAnswer])
		assert.Equal(t, card.Answer, q.Explanation)
	}
}

func TestGenerate_PadsSmallDecks(t *testing.T) {
	// Three cards leave only two real distractors per question, so the
	// fourth option is always a placeholder.
	questions, err := quiz.Generate(deckWithCards(3), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for _, q := range questions {
		padded := 0
		for _, opt := range q.Options {
			if opt == "Incorrect answer 3" {
				padded++
			}
		}
		assert.Equal(t, 1, padded, "question %q", q.Question)
	}
}

func TestGenerate_CapsAtTenQuestions(t *testing.T) {
	questions, err := quiz.Generate(deckWithCards(15), rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.Len(t, questions, 10)

	// Deck order is preserved up to the cap.
	for i, q := range questions {
		assert.Equal(t, fmt.Sprintf("Question %d", i), q.Question)
	}
}

func TestGenerate_SeededDeterminism(t *testing.T) {
	deck := deckWithCards(6)

	first, err := quiz.Generate(deck, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	second, err := quiz.Generate(deck, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Options, second[i].Options)
		assert.Equal(t, first[i].CorrectAnswer, second[i].CorrectAnswer)
	}
}
