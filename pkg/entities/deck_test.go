package entities

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DeckTestSuite struct {
	suite.Suite
}

func TestDeckSuite(t *testing.T) {
	suite.Run(t, new(DeckTestSuite))
}

func (s *DeckTestSuite) TestNewDeck() {
	deck := NewDeck(rand.New(rand.NewSource(1)))

	s.Equal(52, deck.Len())

	// Shuffling must not lose or duplicate cards
	seen := make(map[Card]int)
	for _, card := range deck.Cards {
		seen[card]++
	}
	s.Len(seen, 52)
}

func (s *DeckTestSuite) TestDrawRemovesCard() {
	deck := NewDeck(rand.New(rand.NewSource(1)))

	card, ok := deck.Draw()

	s.True(ok)
	s.Equal(51, deck.Len())
	s.NotContains(deck.Cards, card, "a drawn card leaves the deck")
}

func (s *DeckTestSuite) TestDrawExhaustsDeck() {
	deck := NewDeck(rand.New(rand.NewSource(1)))

	for i := 0; i < 52; i++ {
		_, ok := deck.Draw()
		s.True(ok, "draw %d should succeed", i)
	}

	_, ok := deck.Draw()
	s.False(ok, "drawing from an empty deck reports no card")
	s.Equal(0, deck.Len())
}

func (s *DeckTestSuite) TestExportImportRoundTrip() {
	deck := NewDeck(rand.New(rand.NewSource(1)))

	// Draw a few so the remainder is a partial deck
	for i := 0; i < 5; i++ {
		_, ok := deck.Draw()
		s.True(ok)
	}

	tokens := deck.Export()
	s.Len(tokens, 47)

	restored, err := ImportDeck(tokens, rand.New(rand.NewSource(2)))

	s.NoError(err)
	s.Equal(deck.Cards, restored.Cards, "import preserves the remaining order")
}

func (s *DeckTestSuite) TestImportDeckBadToken() {
	_, err := ImportDeck([]string{"SPADES:ACE", "garbage"}, rand.New(rand.NewSource(1)))

	s.ErrorIs(err, ErrNoSeparator)
}
