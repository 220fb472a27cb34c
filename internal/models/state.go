package models

// Tabs the frontend can mark active. The server only validates the value;
// rendering is the frontend's business.
var Tabs = []string{"home", "notes", "decks", "quiz", "chat"}

// ValidTab reports whether tab names a known view.
func ValidTab(tab string) bool {
	for _, t := range Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

// State is the full application state for one installation. It is held in
// memory by the store and mirrored to durable storage as a single JSON
// document on every mutation.
type State struct {
	UserName  string          `json:"user_name"`
	ActiveTab string          `json:"active_tab"`
	Subjects  []Subject       `json:"subjects"`
	Notes     []Note          `json:"notes"`
	Decks     []FlashcardDeck `json:"decks"`
	Exams     []Exam          `json:"exams"`
	Tasks     []StudyTask     `json:"tasks"`
	Quizzes   []Quiz          `json:"quizzes"`
	Messages  []ChatMessage   `json:"messages"`
}

// NewState returns an empty state with the default view selected.
// The subject catalog is seeded by the store on first load.
func NewState() *State {
	return &State{ActiveTab: "home"}
}

// DefaultSubjects is the fixed ten-entry subject catalog seeded at first run.
// Subjects are immutable afterwards; nothing in the store mutates them.
func DefaultSubjects() []Subject {
	return []Subject{
		{ID: "1", Name: "Matematika", Color: "#ef4444", Icon: "📐"},
		{ID: "2", Name: "Magyar", Color: "#f59e0b", Icon: "📖"},
		{ID: "3", Name: "Történelem", Color: "#10b981", Icon: "🏛️"},
		{ID: "4", Name: "Angol", Color: "#3b82f6", Icon: "🇬🇧"},
		{ID: "5", Name: "Fizika", Color: "#8b5cf6", Icon: "⚡"},
		{ID: "6", Name: "Kémia", Color: "#ec4899", Icon: "🧪"},
		{ID: "7", Name: "Biológia", Color: "#14b8a6", Icon: "🧬"},
		{ID: "8", Name: "Informatika", Color: "#6366f1", Icon: "💻"},
		{ID: "9", Name: "Földrajz", Color: "#84cc16", Icon: "🌍"},
		{ID: "10", Name: "Egyéb", Color: "#64748b", Icon: "📚"},
	}
}
