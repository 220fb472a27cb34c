// Package store holds the canonical in-memory copy of the application state
// and keeps a durable mirror in sync. Every mutation is applied to a copy of
// the state, persisted write-through, and only then made visible, so the
// mirror never lags and a failed save never corrupts the in-memory state.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kadarb/studyflash/internal/errors"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/models"
	"github.com/kadarb/studyflash/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	state  *models.State
	driver storage.Driver
	log    *logger.Logger
}

// Open loads persisted state from the driver, seeding the subject catalog
// when the installation is fresh.
func Open(ctx context.Context, driver storage.Driver) (*Store, error) {
	log := logger.Default().WithPrefix("store")

	state, err := driver.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		log.Info("no persisted state, initializing")
		state = models.NewState()
	}
	if len(state.Subjects) == 0 {
		state.Subjects = models.DefaultSubjects()
		if err := driver.Save(ctx, state); err != nil {
			return nil, err
		}
		log.Debug("seeded %d subjects", len(state.Subjects))
	}

	log.Info("state loaded: %d notes, %d decks, %d exams, %d tasks",
		len(state.Notes), len(state.Decks), len(state.Exams), len(state.Tasks))
	return &Store{state: state, driver: driver, log: log}, nil
}

// mutate applies fn to a copy of the state, persists it, and swaps it in.
// The visible state only advances when the save succeeded.
func (s *Store) mutate(ctx context.Context, fn func(*models.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneState(s.state)
	if err := fn(next); err != nil {
		return err
	}
	if err := s.driver.Save(ctx, next); err != nil {
		s.log.Error("failed to persist state: %v", err)
		return apperrors.NewInternalError(err)
	}
	s.state = next
	return nil
}

func cloneState(state *models.State) *models.State {
	// State is plain data all the way down, so a JSON round-trip is a
	// correct deep copy. Marshal of State cannot fail.
	data, _ := json.Marshal(state)
	var out models.State
	_ = json.Unmarshal(data, &out)
	return &out
}

// Snapshot returns a deep copy of the full state.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *cloneState(s.state)
}

// Subjects returns the fixed subject catalog.
func (s *Store) Subjects() []models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subject, len(s.state.Subjects))
	copy(out, s.state.Subjects)
	return out
}

// SubjectByID looks a subject up in the catalog.
func (s *Store) SubjectByID(id string) (models.Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, subj := range s.state.Subjects {
		if subj.ID == id {
			return subj, true
		}
	}
	return models.Subject{}, false
}

// UserName returns the stored display name.
func (s *Store) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserName
}

// SetUserName stores the display name.
func (s *Store) SetUserName(ctx context.Context, name string) error {
	return s.mutate(ctx, func(state *models.State) error {
		state.UserName = name
		return nil
	})
}

// ActiveTab returns the persisted view selector.
func (s *Store) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveTab
}

// SetActiveTab stores the active view.
func (s *Store) SetActiveTab(ctx context.Context, tab string) error {
	if !models.ValidTab(tab) {
		return apperrors.NewValidationError("tab", "unknown view")
	}
	return s.mutate(ctx, func(state *models.State) error {
		state.ActiveTab = tab
		return nil
	})
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}
