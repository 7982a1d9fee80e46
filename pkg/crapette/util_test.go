package crapette

import (
	"fmt"
	"math/rand"
	"time"

	"crapette-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// testEngine returns an engine with a frozen clock, sequential action ids,
// and a fixed random source
func testEngine() *Engine {
	e := New(logrus.StandardLogger())

	ts := time.Date(2020, time.January, 2, 15, 4, 5, 0, time.UTC)
	e.now = func() time.Time { return ts }

	var n int
	e.newID = func() string {
		n++
		return fmt.Sprintf("action-%d", n)
	}

	e.rand = rand.New(rand.NewSource(42))
	return e
}

// testGame returns a freshly dealt game already in progress
func testGame(e *Engine) *GameState {
	state := e.InitializeGame("game-1", "p1", "p2", 12345)
	state.Phase = PhaseInProgress
	return state
}

// suitRun returns the first n cards of a suit in ascending rank order
func suitRun(suit deck.Suit, n int) []deck.Card {
	cards := make([]deck.Card, n)
	for i := 0; i < n; i++ {
		cards[i] = deck.NewCard(deck.RankOrder[i], suit)
	}

	return cards
}

func moveAction(playerID string, from, to PileLocation, cardIDs ...string) *Action {
	return &Action{
		ActionID:  fmt.Sprintf("move-%s-%s", playerID, cardIDs[0]),
		PlayerID:  playerID,
		Type:      ActionMoveCard,
		Move:      &MovePayload{From: from, To: to, CardIDs: cardIDs},
		Timestamp: time.Date(2020, time.January, 2, 15, 4, 5, 0, time.UTC),
	}
}

func countCards(state *GameState) int {
	total := 0
	for _, p := range state.Players {
		total += len(p.Piles.Reserve)
		for _, pile := range p.Piles.Tableau {
			total += len(pile)
		}
		for _, pile := range p.Piles.Foundation {
			total += len(pile)
		}
	}

	return total
}
