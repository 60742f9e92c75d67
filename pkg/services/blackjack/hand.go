package blackjack

import (
	"github.com/fadedpez/gamesvc/pkg/entities"
)

// Hand represents the ordered cards held by one party
type Hand struct {
	Cards []entities.Card
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{Cards: make([]entities.Card, 0, 5)}
}

// AddCard appends a card to the hand. The hand itself enforces no upper
// bound; the game applies the five-card rule.
func (h *Hand) AddCard(card entities.Card) {
	h.Cards = append(h.Cards, card)
}

// Score totals the hand. Aces count 11 or 1: the first ace counts 11
// when the rest of the hand totals 10 or less, every further ace
// counts 1.
func (h *Hand) Score() int {
	total := 0
	aces := 0
	for _, card := range h.Cards {
		if card.Face == entities.Ace {
			aces++
		} else {
			total += card.Value()
		}
	}

	if aces >= 1 {
		if total <= 10 {
			total += 11
		} else {
			total++
		}
		aces--
	}
	total += aces

	return total
}

// Export returns the score and card tokens for persistence and responses
func (h *Hand) Export() (int, []string) {
	tokens := make([]string, 0, len(h.Cards))
	for _, card := range h.Cards {
		tokens = append(tokens, card.String())
	}
	return h.Score(), tokens
}

func importHand(tokens []string) (*Hand, error) {
	hand := NewHand()
	for _, token := range tokens {
		card, err := entities.ParseCard(token)
		if err != nil {
			return nil, err
		}
		hand.AddCard(card)
	}
	return hand, nil
}
