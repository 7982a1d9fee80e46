package model

import (
	"testing"

	"crapette-server/pkg/crapette"

	"github.com/stretchr/testify/assert"
)

func TestMatch_PlayerKeys(t *testing.T) {
	m := &Match{Player1ID: 7, Player2ID: 11}
	p1, p2 := m.PlayerKeys()
	assert.Equal(t, "player-7", p1)
	assert.Equal(t, "player-11", p2)

	assert.True(t, m.HasPlayer(7))
	assert.True(t, m.HasPlayer(11))
	assert.False(t, m.HasPlayer(13))
}

func TestMatch_SyncFromState(t *testing.T) {
	state := &crapette.GameState{
		Phase: crapette.PhaseFinished,
		Turn:  "player-7",
		Seq:   3,
		Players: []*crapette.PlayerState{
			{PlayerID: "player-7", Score: 100},
			{PlayerID: "player-11", Score: -10},
		},
	}

	var m Match
	m.SyncFromState(state)
	assert.Equal(t, crapette.PhaseFinished, m.Phase)
	assert.Equal(t, "player-7", m.Turn)
	assert.Equal(t, 3, m.Seq)
	assert.Equal(t, 100, m.Score1)
	assert.Equal(t, -10, m.Score2)
}

func TestUserError(t *testing.T) {
	assert.Equal(t, "boom", UserError("boom").Error())
}
