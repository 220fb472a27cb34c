// Package storage persists the application state document. The store treats
// persistence as a key-value primitive: load one serialized state, save one
// serialized state. The concrete medium hides behind Driver so tests can run
// against an in-memory fake.
package storage

import (
	"context"
	"time"

	"github.com/kadarb/studyflash/internal/models"
)

// Driver is the durable-storage contract the store writes through on every
// mutation. Load returns (nil, nil) when no state has been saved yet.
type Driver interface {
	Load(ctx context.Context) (*models.State, error)
	Save(ctx context.Context, state *models.State) error
}

// Snapshot describes one retained copy of the persisted state.
type Snapshot struct {
	ID        int64     `json:"id"`
	SizeBytes int       `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotLister is implemented by drivers that retain a bounded history of
// saved states.
type SnapshotLister interface {
	Snapshots(ctx context.Context, limit int) ([]Snapshot, error)
}
