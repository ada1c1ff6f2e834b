package repositories

import (
	"context"
	"sync"

	"github.com/yigit/hostelsphere/internal/app/models"
)

// MemoryStateRepository keeps the snapshot as encoded buckets in memory.
// It encodes on every save so it exercises the same round trip as the SQL stores.
type MemoryStateRepository struct {
	mu       sync.Mutex
	payloads map[string][]byte
	saves    int
}

// NewMemoryStateRepository creates an empty in-memory repository
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{payloads: map[string][]byte{}}
}

// Load decodes the last saved snapshot
func (r *MemoryStateRepository) Load(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return decodeBuckets(r.payloads)
}

// Save replaces the stored snapshot
func (r *MemoryStateRepository) Save(ctx context.Context, snapshot models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payloads, err := encodeBuckets(snapshot)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.payloads = payloads
	r.saves++
	r.mu.Unlock()
	return nil
}

// Saves returns how many snapshots have been written
func (r *MemoryStateRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// Close is a no-op
func (r *MemoryStateRepository) Close() error { return nil }
