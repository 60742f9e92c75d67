package session

import (
	"context"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_session

// Repository defines storage operations for blackjack session records.
// Implementations must keep operations on a single player id
// linearizable: a Get must observe the immediately preceding Upsert or
// Delete for that id.
type Repository interface {
	// Get returns the record for a player, or nil when none exists
	Get(ctx context.Context, playerID int64) (*Record, error)

	// Upsert inserts or replaces the record keyed by its player id
	Upsert(ctx context.Context, record *Record) error

	// Delete removes the record for a player
	Delete(ctx context.Context, playerID int64) error

	// CountActive returns the number of in-progress sessions
	CountActive(ctx context.Context) (int64, error)

	// Close closes any resources used by the repository
	Close() error
}
