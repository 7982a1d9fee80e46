package crapette

import (
	"testing"

	"crapette-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestEngine_InitializeGame(t *testing.T) {
	e := testEngine()
	state := e.InitializeGame("game-1", "p1", "p2", 12345)

	assert.Equal(t, "game-1", state.GameID)
	assert.Equal(t, int32(12345), state.Seed)
	assert.Equal(t, PhaseStarting, state.Phase)
	assert.Equal(t, "p1", state.Turn)
	assert.Equal(t, 0, state.Seq)
	assert.Equal(t, []*Action{}, state.History)
	assert.Equal(t, 2, len(state.Players))

	for _, player := range state.Players {
		assert.Equal(t, 13, len(player.Piles.Reserve))
		assert.Equal(t, 4, len(player.Piles.Tableau))
		for _, tableau := range player.Piles.Tableau {
			assert.Equal(t, 2, len(tableau))
		}
		assert.Equal(t, 4, len(player.Piles.Foundation))
		for _, foundation := range player.Piles.Foundation {
			assert.Equal(t, 0, len(foundation))
		}
	}

	// the legacy deal places 42 of the 52 cards
	assert.Equal(t, 42, countCards(state))

	// no card is dealt twice
	seen := make(map[string]bool)
	for _, player := range state.Players {
		for _, card := range player.Piles.Reserve {
			seen[card.ID] = true
		}
		for _, tableau := range player.Piles.Tableau {
			for _, card := range tableau {
				seen[card.ID] = true
			}
		}
	}
	assert.Equal(t, 42, len(seen))

	// same seed, same deal
	assert.Equal(t, state.Players, e.InitializeGame("game-2", "p1", "p2", 12345).Players)
}

func TestEngine_ValidateAction(t *testing.T) {
	e := testEngine()

	state := e.InitializeGame("game-1", "p1", "p2", 12345)
	result := e.ValidateAction(state, e.NewAction("p1", ActionEndTurn, 0))
	assert.False(t, result.Valid)
	assert.Equal(t, "game is not in progress", result.Reason)

	state.Phase = PhaseInProgress

	result = e.ValidateAction(state, e.NewAction("p2", ActionEndTurn, 0))
	assert.False(t, result.Valid)
	assert.Equal(t, "not your turn", result.Reason)

	result = e.ValidateAction(state, e.NewAction("p3", ActionChat, 0))
	assert.False(t, result.Valid)
	assert.Equal(t, "player not found", result.Reason)

	result = e.ValidateAction(state, e.NewAction("p1", ActionDraw, 0))
	assert.False(t, result.Valid)
	assert.Equal(t, "unknown action type: DRAW", result.Reason)

	result = e.ValidateAction(state, e.NewAction("p1", ActionMoveCard, 0))
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid move payload", result.Reason)

	result = e.ValidateAction(state, e.NewAction("p1", ActionCrapette, 0))
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid crapette payload", result.Reason)

	result = e.ValidateAction(state, e.NewAction("p1", ActionEndTurn, 0))
	assert.True(t, result.Valid)
	assert.True(t, result.TurnEnd)

	// CRAPETTE is an interrupt and may be lodged on the opponent's turn
	action := e.NewAction("p2", ActionCrapette, 0)
	action.Crapette = &CrapettePayload{TargetPlayerID: "p1", ActionIDToChallenge: "a1"}
	assert.True(t, e.ValidateAction(state, action).Valid)
}

func TestEngine_ValidateAction_moveCard(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	move := func(from, to PileLocation, cardIDs ...string) *Action {
		return moveAction("p1", from, to, cardIDs...)
	}

	result := e.ValidateAction(state, move(PileLocation{Pile: PileTableau}, PileLocation{Pile: PileReserve}, "AS"))
	assert.False(t, result.Valid)
	assert.Equal(t, "cannot move to reserve", result.Reason)

	result = e.ValidateAction(state, move(PileLocation{Pile: PileTableau, Index: 9}, PileLocation{Pile: PileFoundation}, "AS"))
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid move payload", result.Reason)

	result = e.ValidateAction(state, move(PileLocation{Pile: PileTableau}, PileLocation{Pile: PileFoundation, Index: 9}, "AS"))
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid move payload", result.Reason)

	// a card id that is not in the source pile
	state.Players[0].Piles.Tableau[0] = deck.CardsFromString("KS")
	result = e.ValidateAction(state, move(PileLocation{Pile: PileTableau}, PileLocation{Pile: PileTableau, Index: 1}, "QH"))
	assert.False(t, result.Valid)
	assert.Equal(t, "cards to move not found", result.Reason)
}

func TestEngine_ApplyAction_endTurn(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	result := e.ApplyAction(state, e.NewAction("p1", ActionEndTurn, 0))
	assert.True(t, result.Success)
	assert.Equal(t, "p2", result.NewGameState.Turn)
	assert.Equal(t, 1, result.NewGameState.Seq)
	assert.Equal(t, 1, len(result.NewGameState.History))
	assert.Equal(t, 1, len(result.Events))
	assert.Equal(t, EventTurnEnded, result.Events[0].Type)

	// the input state is untouched
	assert.Equal(t, "p1", state.Turn)
	assert.Equal(t, 0, state.Seq)
	assert.Equal(t, 0, len(state.History))

	// seq always equals the history length
	assert.Equal(t, result.NewGameState.Seq, len(result.NewGameState.History))

	result = e.ApplyAction(state, e.NewAction("p2", ActionEndTurn, 0))
	assert.False(t, result.Success)
	assert.Equal(t, "not your turn", result.Error)
}

func TestEngine_ApplyAction_moveCard(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	p1 := state.Players[0]
	p1.Piles.Reserve = deck.CardsFromString("AS")
	p1.Piles.Tableau[0] = deck.CardsFromString("KS,QH")
	p1.Piles.Tableau[1] = []deck.Card{}

	action := moveAction("p1", PileLocation{Pile: PileReserve}, PileLocation{Pile: PileFoundation}, "AS")
	result := e.ApplyAction(state, action)
	assert.True(t, result.Success)

	newP1 := result.NewGameState.Players[0]
	assert.Equal(t, 0, len(newP1.Piles.Reserve))
	assert.Equal(t, "AS", newP1.Piles.Foundation[0][0].ID)
	assert.Equal(t, "p2", result.NewGameState.Turn)
	assert.Equal(t, []EventType{EventTurnEnded, EventMoveApplied}, eventTypes(result.Events))

	// original untouched
	assert.Equal(t, 1, len(p1.Piles.Reserve))
	assert.Equal(t, 0, len(p1.Piles.Foundation[0]))

	// a tableau move takes the named card and everything above it
	state.Turn = "p1"
	action = moveAction("p1", PileLocation{Pile: PileTableau}, PileLocation{Pile: PileTableau, Index: 1}, "QH")
	result = e.ApplyAction(state, action)
	assert.True(t, result.Success)

	newP1 = result.NewGameState.Players[0]
	assert.Equal(t, "KS", deck.CardsToString(newP1.Piles.Tableau[0]))
	assert.Equal(t, "QH", deck.CardsToString(newP1.Piles.Tableau[1]))
}

func TestEngine_ApplyAction_winningMove(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	p1 := state.Players[0]
	p1.Piles.Reserve = deck.CardsFromString("KS")
	p1.Piles.Tableau = [][]deck.Card{{}, {}, {}, {}}
	p1.Piles.Foundation = [][]deck.Card{
		suitRun(deck.Spades, 12),
		suitRun(deck.Hearts, 13),
		suitRun(deck.Diamonds, 13),
		suitRun(deck.Clubs, 13),
	}

	action := moveAction("p1", PileLocation{Pile: PileReserve}, PileLocation{Pile: PileFoundation}, "KS")
	result := e.ApplyAction(state, action)
	assert.True(t, result.Success)
	assert.Equal(t, PhaseFinished, result.NewGameState.Phase)
	assert.Equal(t, 100, result.NewGameState.Players[0].Score)
	assert.Equal(t, []EventType{EventGameWon, EventMoveApplied}, eventTypes(result.Events))
}

func TestEngine_ApplyAction_resign(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	// resigning is allowed out of turn
	state.Turn = "p1"
	result := e.ApplyAction(state, e.NewAction("p2", ActionResign, 0))
	assert.True(t, result.Success)
	assert.Equal(t, PhaseFinished, result.NewGameState.Phase)
	assert.Equal(t, 50, result.NewGameState.Players[0].Score)
	assert.Equal(t, 0, result.NewGameState.Players[1].Score)
	assert.Equal(t, EventPlayerResigned, result.Events[0].Type)
}

func TestEngine_ApplyAction_crapette(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	endTurn := e.NewAction("p1", ActionEndTurn, 0)
	result := e.ApplyAction(state, endTurn)
	assert.True(t, result.Success)
	state = result.NewGameState

	action := e.NewAction("p1", ActionCrapette, state.Seq)
	action.Crapette = &CrapettePayload{
		TargetPlayerID:      "p2",
		ActionIDToChallenge: "nope",
		Reason:              "illegal move",
	}
	result = e.ApplyAction(state, action)
	assert.False(t, result.Success)
	assert.Equal(t, "action to challenge not found", result.Error)

	// it is p2's turn, but the interrupt still goes through
	action = e.NewAction("p1", ActionCrapette, state.Seq)
	action.Crapette = &CrapettePayload{
		TargetPlayerID:      "p2",
		ActionIDToChallenge: endTurn.ActionID,
		Reason:              "illegal move",
	}
	result = e.ApplyAction(state, action)
	assert.True(t, result.Success)
	assert.Equal(t, -10, result.NewGameState.Players[1].Score)
	assert.Equal(t, 5, result.NewGameState.Players[0].Score)
	assert.Equal(t, 2, result.NewGameState.Seq)
	assert.Equal(t, EventCrapetteValid, result.Events[0].Type)

	action = e.NewAction("p1", ActionCrapette, state.Seq)
	action.Crapette = &CrapettePayload{TargetPlayerID: "p3", ActionIDToChallenge: endTurn.ActionID}
	result = e.ApplyAction(state, action)
	assert.False(t, result.Success)
	assert.Equal(t, "player not found", result.Error)
}

func TestEngine_ApplyAction_chat(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	action := e.NewAction("p2", ActionChat, 0)
	action.Chat = &ChatPayload{Text: "hello"}
	result := e.ApplyAction(state, action)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.NewGameState.Seq)
	assert.Equal(t, "p1", result.NewGameState.Turn)
	assert.Equal(t, 42, countCards(result.NewGameState))
	assert.Equal(t, EventMoveApplied, result.Events[0].Type)
}

func TestEngine_UndoLastAction(t *testing.T) {
	e := testEngine()
	state := testGame(e)

	result := e.UndoLastAction(state)
	assert.False(t, result.Success)
	assert.Equal(t, "no actions to undo", result.Error)

	applied := e.ApplyAction(state, e.NewAction("p1", ActionEndTurn, 0))
	assert.True(t, applied.Success)

	result = e.UndoLastAction(applied.NewGameState)
	assert.True(t, result.Success)

	undone := result.NewGameState
	assert.Equal(t, 0, undone.Seq)
	assert.Equal(t, 0, len(undone.History))
	assert.Equal(t, "p1", undone.Turn)
	assert.Equal(t, PhaseInProgress, undone.Phase)
	assert.Equal(t, state.Players, undone.Players)
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, event := range events {
		types[i] = event.Type
	}

	return types
}
