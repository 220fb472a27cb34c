package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kadarb/studyflash/internal/models"
)

// Memory is an in-memory Driver for tests. It round-trips through JSON so
// serialization bugs do not hide behind shared pointers.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	Saves int // number of Save calls, for asserting write-through behavior
}

// NewMemory returns an empty in-memory driver.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (*models.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	var state models.State
	if err := json.Unmarshal(m.data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *Memory) Save(ctx context.Context, state *models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.Saves++
	return nil
}

// FailingDriver returns a fixed error from Save, for testing rollback
// behavior in the store.
type FailingDriver struct {
	Err error
}

func (f *FailingDriver) Load(ctx context.Context) (*models.State, error) { return nil, nil }

func (f *FailingDriver) Save(ctx context.Context, state *models.State) error { return f.Err }
