package blackjack

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/gamesvc/internal/logging"
	"github.com/fadedpez/gamesvc/pkg/repositories/history"
	"github.com/fadedpez/gamesvc/pkg/repositories/session"
)

// HandView is the response shape of one hand
type HandView struct {
	Score int      `json:"score"`
	Cards []string `json:"cards"`
}

// View is the response payload for one session
type View struct {
	PlayerID   int64    `json:"player_id"`
	Bet        int64    `json:"bet"`
	FirstTurn  bool     `json:"first_turn"`
	PlayerStay bool     `json:"player_stay"`
	DealerStay bool     `json:"dealer_stay"`
	Gain       int64    `json:"gain"`
	Player     HandView `json:"player_hand"`
	Dealer     HandView `json:"dealer_hand"`
}

// Service drives blackjack sessions as units of work: every operation
// restores or creates a game, applies exactly one turn, and guarantees
// the save-or-remove step runs before the game instance is discarded.
type Service struct {
	store   session.Repository
	history history.Repository
	logger  *logging.Logger

	// newRand supplies the randomness for shuffling and drawing; tests
	// replace it with a seeded generator
	newRand func() *rand.Rand
}

// NewService creates a new blackjack service. The history repository is
// optional; when nil, settled games are not indexed.
func NewService(store session.Repository, hist history.Repository, logger *logging.Logger) *Service {
	return &Service{
		store:   store,
		history: hist,
		logger:  logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Create starts a new game for a player with the given bet
func (s *Service) Create(ctx context.Context, playerID, bet int64) (*View, error) {
	game, err := NewGame(ctx, s.store, s.newRand(), playerID, bet)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, game)

	return newView(game), nil
}

// Info returns the current state of a player's session
func (s *Service) Info(ctx context.Context, playerID int64) (*View, error) {
	game, err := RestoreGame(ctx, s.store, s.newRand(), playerID)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, game)

	return newView(game), nil
}

// Hit draws one card into the player's hand
func (s *Service) Hit(ctx context.Context, playerID int64) (*View, error) {
	game, err := RestoreGame(ctx, s.store, s.newRand(), playerID)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, game)

	if err := game.Hit(); err != nil {
		return nil, err
	}

	return newView(game), nil
}

// Stay marks the player as done and plays out the dealer's turn
func (s *Service) Stay(ctx context.Context, playerID int64) (*View, error) {
	game, err := RestoreGame(ctx, s.store, s.newRand(), playerID)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, game)

	if err := game.Stay(); err != nil {
		return nil, err
	}

	return newView(game), nil
}

// Claim settles a finished game and removes its record. A second claim
// for the same player finds no record and fails, so a payout can never
// be collected twice.
func (s *Service) Claim(ctx context.Context, playerID int64) (*View, error) {
	game, err := RestoreGame(ctx, s.store, s.newRand(), playerID)
	if err != nil {
		return nil, err
	}
	defer s.finish(ctx, game)

	if err := game.Claim(); err != nil {
		return nil, err
	}

	s.indexSettled(ctx, game)

	return newView(game), nil
}

// ActiveSessions returns the number of in-progress games
func (s *Service) ActiveSessions(ctx context.Context) (int64, error) {
	count, err := s.store.CountActive(ctx)
	if err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return count, nil
}

// finish runs the save-or-remove step of a unit of work. The caller's
// response is already built at this point, so failures are logged
// rather than propagated.
func (s *Service) finish(ctx context.Context, game *Game) {
	if err := game.Finish(ctx); err != nil {
		s.logger.Error("Error persisting session for player %d: %v", game.PlayerID, err)
	}
}

// indexSettled records a claimed game in the history index, best effort
func (s *Service) indexSettled(ctx context.Context, game *Game) {
	if s.history == nil {
		return
	}

	playerScore, playerCards := game.Player.Export()
	dealerScore, dealerCards := game.Dealer.Export()

	settled := &history.SettledGame{
		ID:          uuid.NewString(),
		PlayerID:    game.PlayerID,
		Bet:         game.Bet,
		Won:         game.Status() == StatePlayerWon,
		Gain:        game.Gain,
		PlayerScore: playerScore,
		DealerScore: dealerScore,
		PlayerCards: playerCards,
		DealerCards: dealerCards,
		SettledAt:   time.Now().UTC(),
	}

	if err := s.history.IndexSettledGame(ctx, settled); err != nil {
		s.logger.Warn("Error indexing settled game for player %d: %v", game.PlayerID, err)
	}
}

func newView(game *Game) *View {
	playerScore, playerCards := game.Player.Export()
	dealerScore, dealerCards := game.Dealer.Export()

	return &View{
		PlayerID:   game.PlayerID,
		Bet:        game.Bet,
		FirstTurn:  game.FirstTurn,
		PlayerStay: game.PlayerStay,
		DealerStay: game.DealerStay,
		Gain:       game.Gain,
		Player:     HandView{Score: playerScore, Cards: playerCards},
		Dealer:     HandView{Score: dealerScore, Cards: dealerCards},
	}
}
