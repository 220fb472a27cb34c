package models

import "time"

// Difficulty rates how demanding a flashcard or exam is. It drives the
// study-plan heuristic.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Note struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Flashcard struct {
	ID           string     `json:"id"`
	NoteID       string     `json:"note_id,omitempty"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Difficulty   Difficulty `json:"difficulty"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	TimesCorrect int        `json:"times_correct"`
	TimesWrong   int        `json:"times_wrong"`
}

// FlashcardDeck owns its cards outright; a card never appears in two decks.
// Card order is insertion order and doubles as quiz/study order.
type FlashcardDeck struct {
	ID        string      `json:"id"`
	SubjectID string      `json:"subject_id"`
	NoteID    string      `json:"note_id,omitempty"`
	Title     string      `json:"title"`
	Cards     []Flashcard `json:"cards"`
	CreatedAt time.Time   `json:"created_at"`
}

type Exam struct {
	ID         string     `json:"id"`
	SubjectID  string     `json:"subject_id"`
	Title      string     `json:"title"`
	Date       Date       `json:"date"`
	Difficulty Difficulty `json:"difficulty"`
	Notes      string     `json:"notes,omitempty"`
}

type StudyTask struct {
	ID              string `json:"id"`
	ExamID          string `json:"exam_id"`
	Title           string `json:"title"`
	Date            Date   `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID        string         `json:"id"`
	NoteID    string         `json:"note_id,omitempty"`
	DeckID    string         `json:"deck_id,omitempty"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
