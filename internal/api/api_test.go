package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadarb/studyflash/internal/ai"
	"github.com/kadarb/studyflash/internal/api"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/services"
	"github.com/kadarb/studyflash/internal/storage"
	"github.com/kadarb/studyflash/internal/store"
	"github.com/kadarb/studyflash/internal/textextract"
)

func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), storage.NewMemory())
	require.NoError(t, err)

	chatClient := ai.NewChatClient(ai.ChatConfig{})
	srv := &api.Server{
		Store:       st,
		Chat:        services.NewChatService(st, chatClient),
		Plan:        services.NewPlanService(st),
		Quiz:        services.NewQuizService(st, rand.NewSource(1)),
		Documents:   services.NewDocumentService(textextract.NewClient("http://localhost:9998")),
		Images:      ai.NewImageClient(""),
		CORSOrigins: []string{"*"},
	}
	return srv.Routes(), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error.Code
}

func subjectID(t *testing.T, st *store.Store) string {
	t.Helper()
	subjects := st.Subjects()
	require.NotEmpty(t, subjects)
	return subjects[0].ID
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestState(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.State
	decodeBody(t, rec, &state)
	assert.Len(t, state.Subjects, len(models.DefaultSubjects()))
}

func TestSetUserName(t *testing.T) {
	h, st := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/api/state/user", map[string]string{"name": "Anna"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", st.UserName())

	rec = doJSON(t, h, http.MethodPut, "/api/state/user", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestSetActiveTab(t *testing.T) {
	h, st := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/api/state/tab", map[string]string{"tab": "quiz"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "quiz", st.ActiveTab())

	rec = doJSON(t, h, http.MethodPut, "/api/state/tab", map[string]string{"tab": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshots_NoLister(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/snapshots", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotes_CRUD(t *testing.T) {
	h, st := newTestServer(t)
	subj := subjectID(t, st)

	rec := doJSON(t, h, http.MethodPost, "/api/notes/", map[string]string{
		"subject_id": subj,
		"title":      "Jegyzet",
		"content":    "tartalom",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		models.Note
		Subject *models.Subject `json:"subject"`
	}
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.Subject, "response resolves the subject")
	assert.Equal(t, subj, created.Subject.ID)

	rec = doJSON(t, h, http.MethodPut, "/api/notes/"+created.ID, map[string]string{"title": "Új cím"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Note
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Új cím", updated.Title)

	rec = doJSON(t, h, http.MethodDelete, "/api/notes/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/notes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestCreateNote_Validation(t *testing.T) {
	h, st := newTestServer(t)
	subj := subjectID(t, st)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty title", map[string]string{"subject_id": subj, "title": ""}},
		{"unknown subject", map[string]string{"subject_id": "nope", "title": "cím"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/notes/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
		})
	}
}

func TestCreateNote_UnknownFieldRejected(t *testing.T) {
	h, st := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/notes/", map[string]string{
		"subject_id": subjectID(t, st),
		"title":      "cím",
		"bogus":      "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))
}

func TestDecks_CreateAndReview(t *testing.T) {
	h, st := newTestServer(t)
	subj := subjectID(t, st)

	rec := doJSON(t, h, http.MethodPost, "/api/decks/", map[string]any{
		"subject_id": subj,
		"title":      "Pakli",
		"cards": []map[string]string{
			{"question": "Q1", "answer": "A1"},
			{"question": "Q2", "answer": "A2"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var deck models.FlashcardDeck
	decodeBody(t, rec, &deck)
	require.Len(t, deck.Cards, 2)

	rec = doJSON(t, h, http.MethodPost, "/api/decks/"+deck.ID+"/cards", map[string]string{
		"question": "Q3", "answer": "A3",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var card models.Flashcard
	decodeBody(t, rec, &card)

	rec = doJSON(t, h, http.MethodPost,
		fmt.Sprintf("/api/decks/%s/cards/%s/result", deck.ID, card.ID),
		map[string]bool{"correct": true})
	require.Equal(t, http.StatusOK, rec.Code)
	var reviewed models.Flashcard
	decodeBody(t, rec, &reviewed)
	assert.Equal(t, 1, reviewed.TimesCorrect)
	assert.NotNil(t, reviewed.LastReviewed)
}

func TestDecks_CardValidation(t *testing.T) {
	h, st := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/decks/", map[string]any{
		"subject_id": subjectID(t, st),
		"title":      "Pakli",
		"cards":      []map[string]string{{"question": "", "answer": "A"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestGenerateQuiz(t *testing.T) {
	h, st := newTestServer(t)
	subj := subjectID(t, st)

	deck, err := st.AddDeck(context.Background(), subj, "", "Pakli", []models.Flashcard{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
		{Question: "Q3", Answer: "A3"},
	})
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, "/api/decks/"+deck.ID+"/quiz", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var q models.Quiz
	decodeBody(t, rec, &q)
	require.Len(t, q.Questions, 3)
	for _, question := range q.Questions {
		assert.Len(t, question.Options, 4)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/quizzes/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var quizzes []models.Quiz
	decodeBody(t, rec, &quizzes)
	assert.Len(t, quizzes, 1)
}

func TestGenerateQuiz_DeckTooSmall(t *testing.T) {
	h, st := newTestServer(t)
	deck, err := st.AddDeck(context.Background(), subjectID(t, st), "", "Kicsi", []models.Flashcard{
		{Question: "Q", Answer: "A"},
	})
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodPost, "/api/decks/"+deck.ID+"/quiz", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestExams_CRUDAndPlan(t *testing.T) {
	h, st := newTestServer(t)
	subj := subjectID(t, st)

	examDate := models.NewDate(time.Now()).AddDays(9).String()
	rec := doJSON(t, h, http.MethodPost, "/api/exams/", map[string]string{
		"subject_id": subj,
		"title":      "Matek",
		"date":       examDate,
		"difficulty": "medium",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var exam models.Exam
	decodeBody(t, rec, &exam)

	rec = doJSON(t, h, http.MethodPost, "/api/plan/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []models.StudyTask
	decodeBody(t, rec, &tasks)
	require.Len(t, tasks, 3)

	rec = doJSON(t, h, http.MethodGet, "/api/plan/upcoming?days=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []models.StudyTask
	decodeBody(t, rec, &upcoming)
	assert.Len(t, upcoming, 3)

	rec = doJSON(t, h, http.MethodGet, "/api/plan/upcoming?days=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/plan/tasks/"+tasks[0].ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled models.StudyTask
	decodeBody(t, rec, &toggled)
	assert.True(t, toggled.Completed)

	// Deleting the exam clears its tasks.
	rec = doJSON(t, h, http.MethodDelete, "/api/exams/"+exam.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, st.Tasks())
}

func TestCreateExam_BadDate(t *testing.T) {
	h, st := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/exams/", map[string]string{
		"subject_id": subjectID(t, st),
		"title":      "Matek",
		"date":       "2026/09/01",
		"difficulty": "easy",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestChat_SendWithoutAPIKey(t *testing.T) {
	h, st := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/chat/", map[string]string{"content": "szia"})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply services.ChatReply
	decodeBody(t, rec, &reply)
	assert.True(t, reply.Failed)
	assert.Contains(t, reply.Message.Content, "GROQ_API_KEY")

	require.Len(t, st.Messages(), 2)

	rec = doJSON(t, h, http.MethodDelete, "/api/chat/messages", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, st.Messages())
}

func TestChat_EmptyContentRejected(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/chat/", map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveExtractedFlashcards(t *testing.T) {
	h, st := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/chat/flashcards", map[string]any{
		"subject_id": subjectID(t, st),
		"title":      "Kémia",
		"cards": []map[string]string{
			{"question": "Mi a víz képlete?", "answer": "H2O"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var deck models.FlashcardDeck
	decodeBody(t, rec, &deck)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, models.DifficultyMedium, deck.Cards[0].Difficulty)
}

func TestGenerateImage_NoToken(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/images/generate", map[string]string{"prompt": "egy macska"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))

	rec = doJSON(t, h, http.MethodPost, "/api/images/generate", map[string]string{"prompt": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestExtractDocument_MissingFile(t *testing.T) {
	h, _ := newTestServer(t)

	body := &bytes.Buffer{}
	req := httptest.NewRequest(http.MethodPost, "/api/documents/extract", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=none")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
