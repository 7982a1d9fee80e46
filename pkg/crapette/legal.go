package crapette

import (
	"fmt"

	"crapette-server/pkg/deck"
)

// LegalMovesForPlayer enumerates every single-card move the player could
// legally make: reserve top onto each foundation and tableau pile it fits,
// then each tableau top onto each foundation and every other tableau pile
// it fits. Multi-card sequence moves are only validated on request, never
// enumerated.
//
// The enumeration order is fixed (foundation and tableau indexes ascending,
// sources before destinations as listed above). The hard AI breaks ties by
// this order, so it must not change.
func (e *Engine) LegalMovesForPlayer(state *GameState, playerID string) []*Action {
	player := state.Player(playerID)
	if player == nil {
		return nil
	}

	moves := []*Action{}
	actionCount := 0

	appendMove := func(from, to PileLocation, card deck.Card) {
		moves = append(moves, &Action{
			ActionID: fmt.Sprintf("move-%d", actionCount),
			PlayerID: playerID,
			Type:     ActionMoveCard,
			Move: &MovePayload{
				From:    from,
				To:      to,
				CardIDs: []string{card.ID},
			},
			Seq:       state.Seq,
			Timestamp: e.now(),
		})
		actionCount++
	}

	if reserveTop, ok := topCard(player.Piles.Reserve); ok {
		for i, foundation := range player.Piles.Foundation {
			if CanPlaceOnFoundation(foundation, reserveTop) {
				appendMove(PileLocation{Pile: PileReserve}, PileLocation{Pile: PileFoundation, Index: i}, reserveTop)
			}
		}

		for i, tableau := range player.Piles.Tableau {
			if CanPlaceOnTableau(tableau, reserveTop) {
				appendMove(PileLocation{Pile: PileReserve}, PileLocation{Pile: PileTableau, Index: i}, reserveTop)
			}
		}
	}

	for fromIdx, fromPile := range player.Piles.Tableau {
		tableauTop, ok := topCard(fromPile)
		if !ok {
			continue
		}

		for i, foundation := range player.Piles.Foundation {
			if CanPlaceOnFoundation(foundation, tableauTop) {
				appendMove(PileLocation{Pile: PileTableau, Index: fromIdx}, PileLocation{Pile: PileFoundation, Index: i}, tableauTop)
			}
		}

		for toIdx, tableau := range player.Piles.Tableau {
			if fromIdx != toIdx && CanPlaceOnTableau(tableau, tableauTop) {
				appendMove(PileLocation{Pile: PileTableau, Index: fromIdx}, PileLocation{Pile: PileTableau, Index: toIdx}, tableauTop)
			}
		}
	}

	return moves
}
