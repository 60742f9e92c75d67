package entities

import (
	"math/rand"
)

// Deck represents the ordered cards remaining to draw. The random source
// is injected so tests can stack the deck with a deterministic generator.
type Deck struct {
	Cards []Card

	rng *rand.Rand
}

// NewDeck creates a full 52-card deck shuffled with the given source
func NewDeck(r *rand.Rand) *Deck {
	cards := StandardDeck()
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{Cards: cards, rng: r}
}

// ImportDeck rebuilds a deck from exported card tokens, preserving order
func ImportDeck(tokens []string, r *rand.Rand) (*Deck, error) {
	cards := make([]Card, 0, len(tokens))
	for _, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return &Deck{Cards: cards, rng: r}, nil
}

// Draw removes and returns one card chosen at random from the remaining
// cards. It returns false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}

	i := d.rng.Intn(len(d.Cards))
	card := d.Cards[i]
	d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
	return card, true
}

// Len returns the number of cards remaining in the deck
func (d *Deck) Len() int {
	return len(d.Cards)
}

// Export returns the remaining cards as tokens, preserving order
func (d *Deck) Export() []string {
	tokens := make([]string, 0, len(d.Cards))
	for _, card := range d.Cards {
		tokens = append(tokens, card.String())
	}
	return tokens
}
