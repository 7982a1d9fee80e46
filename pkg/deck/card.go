package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
)

// Rank represents a card rank
type Rank string

// rank constants
const (
	Ace   Rank = "A"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// RankOrder is the fixed rank order A < 2 < ... < K
var RankOrder = []Rank{Ace, "2", "3", "4", "5", "6", "7", "8", "9", "10", Jack, Queen, King}

var rankValues = map[Rank]int{
	Ace: 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7,
	"8": 8, "9": 9, "10": 10, Jack: 11, Queen: 12, King: 13,
}

// Card is an individual playing card
// Cards are immutable values; the ID is derived from rank and suit and is
// unique within a deck.
type Card struct {
	ID    string `json:"id"`
	Rank  Rank   `json:"rank"`
	Suit  Suit   `json:"suit"`
	Value int    `json:"value"`
}

// NewCard returns the card for the given rank and suit
func NewCard(rank Rank, suit Suit) Card {
	value, ok := rankValues[rank]
	if !ok {
		panic(fmt.Sprintf("unknown rank: %s", rank))
	}

	return Card{
		ID:    cardID(rank, suit),
		Rank:  rank,
		Suit:  suit,
		Value: value,
	}
}

func cardID(rank Rank, suit Suit) string {
	return fmt.Sprintf("%s%s", rank, strings.ToUpper(string(suit[0])))
}

// IsRed returns true if the card is hearts or diamonds
func (c Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", c.Rank, suit)
}

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank is one of
// A,2-10,J,Q,K and suit in [SHDC] (e.g. "AS" is the ace of spades).
// This is primarily a test helper and will panic on bad input.
func CardFromString(s string) Card {
	if len(s) < 2 {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank := Rank(s[:len(s)-1])
	if _, ok := rankValues[rank]; !ok {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	var suit Suit
	switch strings.ToLower(s[len(s)-1:]) {
	case "s":
		suit = Spades
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	default:
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	return NewCard(rank, suit)
}

// CardsFromString will return a slice of cards from a comma-separated list
// (e.g. "AS,2H,10D")
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of AS,2H,10D,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.ID
	}

	return strings.Join(c, ",")
}
