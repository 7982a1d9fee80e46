package crapette

import "crapette-server/pkg/deck"

// topCard returns the top (last) card of a pile and whether one exists
func topCard(pile []deck.Card) (deck.Card, bool) {
	if len(pile) == 0 {
		return deck.Card{}, false
	}

	return pile[len(pile)-1], true
}

// CanPlaceOnFoundation returns true if the card may be placed on the
// foundation pile. Foundations build up by rank in a single suit, starting
// from the ace.
func CanPlaceOnFoundation(foundation []deck.Card, card deck.Card) bool {
	top, ok := topCard(foundation)
	if !ok {
		return card.Rank == deck.Ace
	}

	return top.Suit == card.Suit && card.Value == top.Value+1
}

// CanPlaceOnTableau returns true if the card may be placed on the tableau
// pile. Tableaus build down by rank in alternating colors; any card may
// start an empty pile.
func CanPlaceOnTableau(tableau []deck.Card, card deck.Card) bool {
	top, ok := topCard(tableau)
	if !ok {
		return true
	}

	return card.Value == top.Value-1 && card.IsRed() != top.IsRed()
}

// IsValidTableauSequence returns true if every adjacent pair of cards is
// descending by one rank in alternating colors. Empty and single-card
// selections are trivially valid.
func IsValidTableauSequence(cards []deck.Card) bool {
	for i := 0; i < len(cards)-1; i++ {
		current, next := cards[i], cards[i+1]
		if next.Value != current.Value-1 || current.IsRed() == next.IsRed() {
			return false
		}
	}

	return true
}

// ValidateMove checks that cardsToMove may be taken off fromPile and placed
// on toPile. Every successful move ends the mover's turn in this ruleset.
func ValidateMove(fromPile, toPile []deck.Card, toType PileType, cardsToMove []deck.Card) ValidationResult {
	if len(cardsToMove) == 0 {
		return invalidResult(ErrEmptySelection)
	}

	top, ok := topCard(fromPile)
	if !ok {
		return invalidResult(ErrSourceEmpty)
	}

	// only contiguous, top-anchored runs may move
	if cardsToMove[0].ID != top.ID {
		return invalidResult(ErrNotOnTop)
	}

	if len(cardsToMove) > 1 && !IsValidTableauSequence(cardsToMove) {
		return invalidResult(ErrInvalidSequence)
	}

	switch toType {
	case PileFoundation:
		if len(cardsToMove) > 1 {
			return invalidResult(ErrTooManyCards)
		}
		if !CanPlaceOnFoundation(toPile, cardsToMove[0]) {
			return invalidResult(ErrFoundationRejected)
		}
	case PileTableau:
		if !CanPlaceOnTableau(toPile, cardsToMove[0]) {
			return invalidResult(ErrTableauRejected)
		}
	}

	return validResult(true)
}

// HasPlayerWon returns true if every one of the player's cards has migrated
// to a foundation and the foundations hold a complete deck.
func HasPlayerWon(player *PlayerState) bool {
	total := len(player.Piles.Reserve)
	for _, pile := range player.Piles.Tableau {
		total += len(pile)
	}

	foundation := 0
	for _, pile := range player.Piles.Foundation {
		foundation += len(pile)
	}
	total += foundation

	return total == foundation && foundation == 52
}
