package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "HEARTS"
	Spades   Suit = "SPADES"
	Clubs    Suit = "CLUBS"
	Diamonds Suit = "DIAMONDS"
)

// Face represents a card face
type Face string

const (
	Ace   Face = "ACE"
	Two   Face = "TWO"
	Three Face = "THREE"
	Four  Face = "FOUR"
	Five  Face = "FIVE"
	Six   Face = "SIX"
	Seven Face = "SEVEN"
	Eight Face = "EIGHT"
	Nine  Face = "NINE"
	Ten   Face = "TEN"
	Jack  Face = "JACK"
	Queen Face = "QUEEN"
	King  Face = "KING"
	Joker Face = "JOKER"
)

// Card parse errors, one per failure mode so callers can tell a malformed
// token apart from an unknown suit or face.
var (
	ErrNoSeparator = errors.New("card token is missing the suit:face separator")
	ErrUnknownSuit = errors.New("unknown card suit")
	ErrUnknownFace = errors.New("unknown card face")
)

var suitNames = map[string]Suit{
	"HEARTS":   Hearts,
	"SPADES":   Spades,
	"CLUBS":    Clubs,
	"DIAMONDS": Diamonds,
}

var faceNames = map[string]Face{
	"ACE":   Ace,
	"TWO":   Two,
	"THREE": Three,
	"FOUR":  Four,
	"FIVE":  Five,
	"SIX":   Six,
	"SEVEN": Seven,
	"EIGHT": Eight,
	"NINE":  Nine,
	"TEN":   Ten,
	"JACK":  Jack,
	"QUEEN": Queen,
	"KING":  King,
	"JOKER": Joker,
}

var faceValues = map[Face]int{
	Ace:   11,
	Two:   2,
	Three: 3,
	Four:  4,
	Five:  5,
	Six:   6,
	Seven: 7,
	Eight: 8,
	Nine:  9,
	Ten:   10,
	Jack:  10,
	Queen: 10,
	King:  10,
	Joker: 10,
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Face Face
}

// String returns the canonical SUIT:FACE token for the card
func (c Card) String() string {
	return string(c.Suit) + ":" + string(c.Face)
}

// Value returns the blackjack point value of the card.
// An ace can count as either 11 or 1; here it is always 11, the
// hand scoring decides which one applies.
func (c Card) Value() int {
	return faceValues[c.Face]
}

// ParseCard parses a SUIT:FACE token into a Card. Parsing is
// case-insensitive; the rendered form is always upper-case.
func ParseCard(token string) (Card, error) {
	suitPart, facePart, found := strings.Cut(strings.ToUpper(token), ":")
	if !found {
		return Card{}, fmt.Errorf("%w: %q", ErrNoSeparator, token)
	}

	suit, ok := suitNames[suitPart]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownSuit, suitPart)
	}

	face, ok := faceNames[facePart]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownFace, facePart)
	}

	return Card{Suit: suit, Face: face}, nil
}

// StandardDeck returns the 52 standard cards in a fixed order.
// Jokers are representable but are not part of a standard deck.
func StandardDeck() []Card {
	suits := []Suit{Hearts, Spades, Clubs, Diamonds}
	faces := []Face{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	cards := make([]Card, 0, len(suits)*len(faces))
	for _, suit := range suits {
		for _, face := range faces {
			cards = append(cards, Card{Suit: suit, Face: face})
		}
	}

	return cards
}
