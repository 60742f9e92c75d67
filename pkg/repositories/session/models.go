package session

// Record is the persisted representation of one player's blackjack
// session. Exactly one record exists per player id; its presence is the
// source of truth for whether a session exists.
type Record struct {
	PlayerID int64 `json:"player_id"`

	// Bet is nil once the payout was claimed
	Bet *int64 `json:"bet"`

	// Status is nil while the game is in progress, true when the
	// player won and false when the player lost
	Status *bool `json:"status"`

	// Card tokens, in draw order
	Deck       []string `json:"deck"`
	PlayerHand []string `json:"player_hand"`
	DealerHand []string `json:"dealer_hand"`

	PlayerStay bool `json:"player_stay"`
	DealerStay bool `json:"dealer_stay"`
	FirstTurn  bool `json:"first_turn"`
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	clone := *r
	if r.Bet != nil {
		bet := *r.Bet
		clone.Bet = &bet
	}
	if r.Status != nil {
		status := *r.Status
		clone.Status = &status
	}
	clone.Deck = append([]string(nil), r.Deck...)
	clone.PlayerHand = append([]string(nil), r.PlayerHand...)
	clone.DealerHand = append([]string(nil), r.DealerHand...)

	return &clone
}
