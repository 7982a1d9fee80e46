package crapette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_ReconstructGameState(t *testing.T) {
	e := testEngine()

	endTurn1 := e.NewAction("p1", ActionEndTurn, 0)
	endTurn2 := e.NewAction("p2", ActionEndTurn, 1)
	actions := []*Action{endTurn1, endTurn2}

	state, skipped := e.ReconstructGameState("game-1", "p1", "p2", 12345, actions)
	assert.Equal(t, 0, len(skipped))
	assert.Equal(t, 2, state.Seq)
	assert.Equal(t, "p1", state.Turn)
	assert.Equal(t, PhaseInProgress, state.Phase)

	// same input, same output
	again, _ := e.ReconstructGameState("game-1", "p1", "p2", 12345, actions)
	assert.Equal(t, state.Seq, again.Seq)
	assert.Equal(t, state.Turn, again.Turn)
	assert.Equal(t, state.Phase, again.Phase)
	assert.Equal(t, state.Players, again.Players)
}

func TestEngine_ReconstructGameState_skipsBadActions(t *testing.T) {
	e := testEngine()

	outOfTurn := e.NewAction("p2", ActionEndTurn, 0)
	endTurn := e.NewAction("p1", ActionEndTurn, 0)

	state, skipped := e.ReconstructGameState("game-1", "p1", "p2", 12345, []*Action{outOfTurn, endTurn})
	assert.Equal(t, 1, len(skipped))
	assert.Equal(t, outOfTurn.ActionID, skipped[0].ActionID)

	// reconstruction is best-effort: the valid tail still applied
	assert.Equal(t, 1, state.Seq)
	assert.Equal(t, "p2", state.Turn)
}

func TestEngine_VerifyStateConsistency(t *testing.T) {
	e := testEngine()

	state := testGame(e)
	endTurn := e.NewAction("p1", ActionEndTurn, 0)
	result := e.ApplyAction(state, endTurn)
	assert.True(t, result.Success)
	live := result.NewGameState

	assert.True(t, e.VerifyStateConsistency(live, []*Action{endTurn}))

	// a missing action means the live state has drifted
	assert.False(t, e.VerifyStateConsistency(live, []*Action{}))

	// a tampered score is detected
	live.Players[0].Score = 999
	assert.False(t, e.VerifyStateConsistency(live, []*Action{endTurn}))
}
