package history

import (
	"context"
	"sync"
)

// MemoryRepository implements Repository with in-memory storage
type MemoryRepository struct {
	mu    sync.RWMutex
	games []*SettledGame
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// IndexSettledGame stores one settled game
func (r *MemoryRepository) IndexSettledGame(ctx context.Context, game *SettledGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games = append(r.games, game)
	return nil
}

// SettledGames returns all stored games, oldest first
func (r *MemoryRepository) SettledGames() []*SettledGame {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*SettledGame(nil), r.games...)
}

// Close is a no-op for the in-memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
