package blackjack

import (
	"context"
	"math/rand"

	"github.com/fadedpez/gamesvc/pkg/entities"
	"github.com/fadedpez/gamesvc/pkg/repositories/session"
)

// State represents the progress of a blackjack game
type State string

const (
	StateInProgress State = "IN_PROGRESS"
	StatePlayerWon  State = "PLAYER_WON"
	StatePlayerLost State = "PLAYER_LOST"
)

// dealerStandScore is the score at which the dealer stops drawing
const dealerStandScore = 17

// Game is one player's live blackjack session. It exclusively owns its
// deck and both hands; every instance maps to exactly one session
// record, reachable through Record.
type Game struct {
	PlayerID   int64
	Bet        int64
	Player     *Hand
	Dealer     *Hand
	FirstTurn  bool
	PlayerStay bool
	DealerStay bool

	// Gain is the signed settlement amount, valid only after Claim
	Gain int64

	deck    *entities.Deck
	claimed bool
	store   session.Repository
}

// NewGame starts a fresh game for a player: two cards each for player
// and dealer from a shuffled deck, and a new session record. It fails
// with ErrSessionExists when a record is already present, so an
// unclaimed game can never be overwritten.
func NewGame(ctx context.Context, store session.Repository, r *rand.Rand, playerID, bet int64) (*Game, error) {
	existing, err := store.Get(ctx, playerID)
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}
	if existing != nil {
		return nil, ErrSessionExists
	}

	deck := entities.NewDeck(r)
	player := NewHand()
	dealer := NewHand()
	for i := 0; i < 2; i++ {
		for _, hand := range []*Hand{player, dealer} {
			card, ok := deck.Draw()
			if !ok {
				// Cannot happen with a fresh 52-card deck
				return nil, ErrNoCard
			}
			hand.AddCard(card)
		}
	}

	game := &Game{
		PlayerID:  playerID,
		Bet:       bet,
		Player:    player,
		Dealer:    dealer,
		FirstTurn: true,
		deck:      deck,
		store:     store,
	}

	if err := game.Save(ctx); err != nil {
		return nil, err
	}

	return game, nil
}

// RestoreGame rebuilds a live game from the persisted session record
func RestoreGame(ctx context.Context, store session.Repository, r *rand.Rand, playerID int64) (*Game, error) {
	record, err := store.Get(ctx, playerID)
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}
	if record == nil {
		return nil, &InvalidResultCountError{Count: 0}
	}

	if record.Bet == nil {
		// Claimed games have their record removed, so a bet-absent
		// record is a leftover from a settled game; a new one must be
		// started
		return nil, ErrGameOver
	}

	player, err := importHand(record.PlayerHand)
	if err != nil {
		return nil, &CardParseError{Field: "player_hand", Err: err}
	}
	dealer, err := importHand(record.DealerHand)
	if err != nil {
		return nil, &CardParseError{Field: "dealer_hand", Err: err}
	}
	deck, err := entities.ImportDeck(record.Deck, r)
	if err != nil {
		return nil, &CardParseError{Field: "deck", Err: err}
	}

	return &Game{
		PlayerID:   record.PlayerID,
		Bet:        *record.Bet,
		Player:     player,
		Dealer:     dealer,
		FirstTurn:  record.FirstTurn,
		PlayerStay: record.PlayerStay,
		DealerStay: record.DealerStay,
		deck:       deck,
		store:      store,
	}, nil
}

// Status evaluates the game state fresh on every call. The order of the
// checks is significant: a player 21 beats a dealer 21 reached on the
// same evaluation, and an equal score goes to the house.
func (g *Game) Status() State {
	playerScore := g.Player.Score()
	dealerScore := g.Dealer.Score()

	// Five cards wins outright ("five-card charlie"), score regardless.
	// The dealer reaching five cards also awards the player.
	if len(g.Player.Cards) == 5 {
		return StatePlayerWon
	}
	if len(g.Dealer.Cards) == 5 {
		return StatePlayerWon
	}

	if playerScore == 21 {
		return StatePlayerWon
	}
	if dealerScore == 21 {
		return StatePlayerLost
	}

	if !g.PlayerStay && !g.DealerStay {
		return StateInProgress
	}

	if playerScore == dealerScore {
		return StatePlayerLost
	}
	if playerScore > 21 {
		return StatePlayerLost
	}
	if dealerScore > 21 {
		return StatePlayerWon
	}
	if playerScore > dealerScore {
		return StatePlayerWon
	}
	return StatePlayerLost
}

// Hit draws one card into the player's hand
func (g *Game) Hit() error {
	switch g.Status() {
	case StateInProgress:
		if g.PlayerStay {
			return ErrPlayerAlreadyPressedStay
		}
		g.FirstTurn = false
		card, ok := g.deck.Draw()
		if !ok {
			return ErrNoCard
		}
		g.Player.AddCard(card)
		return nil
	case StatePlayerWon:
		return ErrPlayerAlreadyWon
	default:
		return ErrPlayerAlreadyLost
	}
}

// Stay marks the player as done and lets the dealer play out. Pressing
// stay twice is a no-op success.
func (g *Game) Stay() error {
	if g.PlayerStay {
		return nil
	}
	g.PlayerStay = true

	return g.DealerPlay()
}

func (g *Game) dealerHit() error {
	switch g.Status() {
	case StateInProgress:
		if g.DealerStay {
			return ErrDealerAlreadyPressedStay
		}
		card, ok := g.deck.Draw()
		if !ok {
			return ErrNoCard
		}
		g.Dealer.AddCard(card)
		return nil
	case StatePlayerWon:
		return ErrDealerAlreadyLost
	default:
		return ErrDealerAlreadyWon
	}
}

// DealerPlay runs the dealer's turn: draw while the game is still in
// progress and the dealer is under 17, then stay. The player having
// stayed already makes Status settle by comparison, so in practice the
// dealer stands on whatever was dealt.
func (g *Game) DealerPlay() error {
	if !g.PlayerStay {
		return ErrPlayerNotDoneYet
	}

	g.FirstTurn = false

	for g.Status() == StateInProgress && g.Dealer.Score() < dealerStandScore {
		if err := g.dealerHit(); err != nil {
			return err
		}
	}

	g.DealerStay = true
	return nil
}

// Claim settles a finished game: the gain becomes +bet on a win and
// -bet on a loss, and the session record is removed on Finish. Claiming
// an in-progress game fails and changes nothing.
func (g *Game) Claim() error {
	switch g.Status() {
	case StateInProgress:
		return ErrGameInProgress
	case StatePlayerWon:
		g.claimed = true
		g.Gain = g.Bet
	case StatePlayerLost:
		g.claimed = true
		g.Gain = -g.Bet
	}
	return nil
}

// Claimed reports whether the payout was claimed
func (g *Game) Claimed() bool {
	return g.claimed
}

// Record converts the live game into its persisted form. The bet stays
// on the record until the payout is claimed, so a finished game remains
// restorable; a terminal status is stored alongside it. Only
// claim-then-remove eliminates the record.
func (g *Game) Record() *session.Record {
	bet := g.Bet
	var status *bool

	switch g.Status() {
	case StatePlayerWon:
		won := true
		status = &won
	case StatePlayerLost:
		won := false
		status = &won
	}

	_, playerTokens := g.Player.Export()
	_, dealerTokens := g.Dealer.Export()

	return &session.Record{
		PlayerID:   g.PlayerID,
		Bet:        &bet,
		Status:     status,
		Deck:       g.deck.Export(),
		PlayerHand: playerTokens,
		DealerHand: dealerTokens,
		PlayerStay: g.PlayerStay,
		DealerStay: g.DealerStay,
		FirstTurn:  g.FirstTurn,
	}
}

// Save upserts the session record for this game
func (g *Game) Save(ctx context.Context) error {
	if err := g.store.Upsert(ctx, g.Record()); err != nil {
		return &StorageError{Op: "upsert", Err: err}
	}
	return nil
}

// Remove deletes the session record for this game
func (g *Game) Remove(ctx context.Context) error {
	if err := g.store.Delete(ctx, g.PlayerID); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

// Finish runs the persist-or-remove step that ends every unit of work:
// a claimed game's record is removed, any other game is saved.
func (g *Game) Finish(ctx context.Context) error {
	if g.claimed {
		return g.Remove(ctx)
	}
	return g.Save(ctx)
}
