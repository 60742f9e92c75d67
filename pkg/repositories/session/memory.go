package session

import (
	"context"
	"sync"
)

// MemoryRepository implements Repository with in-memory storage
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]*Record
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[int64]*Record),
	}
}

// Get returns the record for a player, or nil when none exists
func (r *MemoryRepository) Get(ctx context.Context, playerID int64) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[playerID]
	if !exists {
		return nil, nil
	}
	return record.Clone(), nil
}

// Upsert inserts or replaces the record keyed by its player id
func (r *MemoryRepository) Upsert(ctx context.Context, record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.PlayerID] = record.Clone()
	return nil
}

// Delete removes the record for a player
func (r *MemoryRepository) Delete(ctx context.Context, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, playerID)
	return nil
}

// CountActive returns the number of in-progress sessions
func (r *MemoryRepository) CountActive(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, record := range r.records {
		if record.Status == nil {
			count++
		}
	}
	return count, nil
}

// Close is a no-op for the in-memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
