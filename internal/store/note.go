package store

import (
	"context"

	"github.com/samber/lo"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
)

// NoteUpdate is a partial update; nil fields are left untouched.
type NoteUpdate struct {
	SubjectID *string
	Title     *string
	Content   *string
}

// Notes returns all notes, newest first.
func (s *Store) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, len(s.state.Notes))
	copy(out, s.state.Notes)
	return out
}

// NoteByID returns a single note.
func (s *Store) NoteByID(id string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := lo.Find(s.state.Notes, func(n models.Note) bool { return n.ID == id })
	if !ok {
		return models.Note{}, apperrors.NewNotFoundError("note", id)
	}
	return note, nil
}

// AddNote creates a note and inserts it at the head of the list.
func (s *Store) AddNote(ctx context.Context, subjectID, title, content string) (models.Note, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	note := models.Note{
		ID:        newID(),
		SubjectID: subjectID,
		Title:     title,
		Content:   content,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	err := s.mutate(ctx, func(state *models.State) error {
		state.Notes = append([]models.Note{note}, state.Notes...)
		return nil
	})
	if err != nil {
		return models.Note{}, err
	}
	log.Debug("note added: id=%s subject=%s", note.ID, note.SubjectID)
	return note, nil
}

// UpdateNote merges the partial update into the note and bumps updated_at.
func (s *Store) UpdateNote(ctx context.Context, id string, upd NoteUpdate) (models.Note, error) {
	var updated models.Note
	err := s.mutate(ctx, func(state *models.State) error {
		idx := lo.IndexOf(lo.Map(state.Notes, func(n models.Note, _ int) string { return n.ID }), id)
		if idx < 0 {
			return apperrors.NewNotFoundError("note", id)
		}
		note := &state.Notes[idx]
		if upd.SubjectID != nil {
			note.SubjectID = *upd.SubjectID
		}
		if upd.Title != nil {
			note.Title = *upd.Title
		}
		if upd.Content != nil {
			note.Content = *upd.Content
		}
		note.UpdatedAt = now()
		updated = *note
		return nil
	})
	if err != nil {
		return models.Note{}, err
	}
	return updated, nil
}

// DeleteNote removes the note and cascades to every deck generated from it.
// Decks with no originating note are untouched.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	return s.mutate(ctx, func(state *models.State) error {
		before := len(state.Notes)
		state.Notes = lo.Filter(state.Notes, func(n models.Note, _ int) bool { return n.ID != id })
		if len(state.Notes) == before {
			return apperrors.NewNotFoundError("note", id)
		}
		decksBefore := len(state.Decks)
		state.Decks = lo.Filter(state.Decks, func(d models.FlashcardDeck, _ int) bool { return d.NoteID != id })
		if removed := decksBefore - len(state.Decks); removed > 0 {
			log.Debug("note delete cascaded to %d decks: note_id=%s", removed, id)
		}
		return nil
	})
}
