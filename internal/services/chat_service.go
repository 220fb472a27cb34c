package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kadarb/studyflash/internal/ai"
	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/extract"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/store"
)

// systemPrompt is the tutor persona. The app targets Hungarian high-school
// students, so the persona and the flashcard key names stay Hungarian.
const systemPrompt = `Te TanulásAI vagy, egy professzionális magyar AI tutor középiskolásoknak.

TANÍTÁSI ALAPELVEK:
- Mindig TANÍTS, ne csak válaszolj
- Használj szokratikus módszert
- Magyarázd el a MIÉRTET, ne csak a HOVÁ
- Lépésről lépésre haladj
- Adj gyakorlati példákat

FORMÁZÁS:
- Egyszerű bekezdések, számozott listák a lépéseknél
- **Félkövér** a kulcsfogalmaknál
- Rövid, tömör bekezdések

FLASHCARD FORMÁTUM:
Ha flashcardokat kérnek, add vissza JSON-ban:
[
  {"kérdés": "Világos kérdés?", "válasz": "Pontos válasz"},
  {"kérdés": "Másik kérdés?", "válasz": "Másik válasz"}
]

VÁLASZOLJ magyarul, érthetően, strukturáltan. Légy tanár, ne Wikipedia!`

// UploadedDocument is text already extracted from a user upload, attached to
// one chat turn as extra context.
type UploadedDocument struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ChatReply is the outcome of one chat turn. Failed marks replies that are
// really error notices: the UI renders them in the chat like any other
// assistant message, per the original behavior.
type ChatReply struct {
	Message   models.ChatMessage `json:"message"`
	Extracted []extract.Card     `json:"extracted_flashcards,omitempty"`
	Failed    bool               `json:"error,omitempty"`
}

// ChatService runs the AI tutor conversation.
type ChatService interface {
	Send(ctx context.Context, content string, doc *UploadedDocument) (*ChatReply, error)
	SaveExtracted(ctx context.Context, subjectID, noteID, title string, cards []extract.Card) (models.FlashcardDeck, error)
}

type chatService struct {
	store  *store.Store
	client *ai.ChatClient
}

// NewChatService creates a ChatService.
func NewChatService(st *store.Store, client *ai.ChatClient) ChatService {
	return &chatService{store: st, client: client}
}

func (s *chatService) Send(ctx context.Context, content string, doc *UploadedDocument) (*ChatReply, error) {
	log := logger.FromContext(ctx)

	if _, err := s.store.AddMessage(ctx, models.RoleUser, content); err != nil {
		return nil, err
	}

	turns := []ai.Message{{Role: "system", Content: s.buildSystemPrompt(doc)}}
	for _, msg := range s.store.Messages() {
		turns = append(turns, ai.Message{Role: msg.Role, Content: msg.Content})
	}

	replyText, err := s.client.Complete(ctx, turns)
	if err != nil {
		// Upstream failures surface as a chat message, never as a crash;
		// the store keeps the user's message either way.
		log.Warn("chat completion failed: %v", err)
		notice := failureNotice(err)
		msg, storeErr := s.store.AddMessage(ctx, models.RoleAssistant, notice)
		if storeErr != nil {
			return nil, storeErr
		}
		return &ChatReply{Message: msg, Failed: true}, nil
	}

	msg, err := s.store.AddMessage(ctx, models.RoleAssistant, replyText)
	if err != nil {
		return nil, err
	}

	cards := extract.Flashcards(replyText)
	if len(cards) > 0 {
		log.Debug("reply contains %d extractable flashcards", len(cards))
	}
	return &ChatReply{Message: msg, Extracted: cards}, nil
}

// buildSystemPrompt appends the study context: what the student already has,
// plus the uploaded document when present.
func (s *chatService) buildSystemPrompt(doc *UploadedDocument) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)

	var context []string
	if name := s.store.UserName(); name != "" {
		context = append(context, "A tanuló neve: "+name)
	}
	if notes := s.store.Notes(); len(notes) > 0 {
		titles := make([]string, 0, len(notes))
		for _, n := range notes {
			titles = append(titles, n.Title)
		}
		context = append(context, "Jegyzetek: "+strings.Join(titles, ", "))
	}
	if decks := s.store.Decks(); len(decks) > 0 {
		var parts []string
		for _, d := range decks {
			parts = append(parts, fmt.Sprintf("%s (%d kártya)", d.Title, len(d.Cards)))
		}
		context = append(context, "Szókártya paklik: "+strings.Join(parts, ", "))
	}
	if len(context) > 0 {
		sb.WriteString("\n\nA TANULÓ ANYAGAI:\n")
		sb.WriteString(strings.Join(context, "\n"))
	}

	if doc != nil && doc.Content != "" {
		fmt.Fprintf(&sb, "\n\nFELTÖLTÖTT FÁJL: %q\n\nTARTALOM:\n%s\n\nElemezd a fájlt alaposan és taníts belőle.", doc.Name, doc.Content)
	}
	return sb.String()
}

func failureNotice(err error) string {
	if err == ai.ErrNoAPIKey {
		return "⚠️ Nincs GROQ_API_KEY beállítva! Add hozzá a szerver .env fájljához: GROQ_API_KEY=your-key-here"
	}
	return fmt.Sprintf("❌ Hiba történt: %v", err)
}

// SaveExtracted turns accepted card drafts into a deck. Extracted cards have
// no difficulty rating, so everything starts medium.
func (s *chatService) SaveExtracted(ctx context.Context, subjectID, noteID, title string, cards []extract.Card) (models.FlashcardDeck, error) {
	if len(cards) == 0 {
		return models.FlashcardDeck{}, apperrors.NewValidationError("cards", "cannot be empty")
	}

	drafts := make([]models.Flashcard, 0, len(cards))
	for _, card := range cards {
		drafts = append(drafts, models.Flashcard{
			NoteID:     noteID,
			Question:   card.Question,
			Answer:     card.Answer,
			Difficulty: models.DifficultyMedium,
		})
	}
	return s.store.AddDeck(ctx, subjectID, noteID, title, drafts)
}
