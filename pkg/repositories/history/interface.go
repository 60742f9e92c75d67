package history

import (
	"context"
	"time"
)

// SettledGame is the record of a claimed blackjack game, kept for
// analytics after the live session record is deleted.
type SettledGame struct {
	ID          string    `json:"id"`
	PlayerID    int64     `json:"player_id"`
	Bet         int64     `json:"bet"`
	Won         bool      `json:"won"`
	Gain        int64     `json:"gain"`
	PlayerScore int       `json:"player_score"`
	DealerScore int       `json:"dealer_score"`
	PlayerCards []string  `json:"player_cards"`
	DealerCards []string  `json:"dealer_cards"`
	SettledAt   time.Time `json:"settled_at"`
}

// Repository defines storage operations for settled game history
type Repository interface {
	// IndexSettledGame stores one settled game
	IndexSettledGame(ctx context.Context, game *SettledGame) error

	// Close closes any resources used by the repository
	Close() error
}
