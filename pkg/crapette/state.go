package crapette

import (
	"time"

	"crapette-server/pkg/deck"
)

// Phase is the lifecycle phase of a game
type Phase string

// game phases
const (
	PhaseLobby      Phase = "LOBBY"
	PhaseStarting   Phase = "STARTING"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhasePaused     Phase = "PAUSED"
	PhaseFinished   Phase = "FINISHED"
)

// PileType identifies one of the three kinds of piles a player owns
type PileType string

// pile types
const (
	PileReserve    PileType = "reserve"
	PileTableau    PileType = "tableau"
	PileFoundation PileType = "foundation"
)

// pile counts for the two-player layout
const (
	numTableauPiles    = 4
	numFoundationPiles = 4
	reserveSize        = 13
	tableauDealSize    = 2
)

// PileLocation addresses a pile by kind and index. The index is ignored for
// the reserve.
type PileLocation struct {
	Pile  PileType `json:"pile"`
	Index int      `json:"index"`
}

// Piles holds all cards owned by one player. Only the last card of each
// sequence (the top) is directly playable.
type Piles struct {
	Reserve    []deck.Card   `json:"reserve"`
	Tableau    [][]deck.Card `json:"tableau"`
	Foundation [][]deck.Card `json:"foundation"`
}

// PlayerState is one player's side of the board
type PlayerState struct {
	PlayerID  string `json:"playerId"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	Score     int    `json:"score"`
	Piles     Piles  `json:"piles"`
}

// GameState is the root aggregate for a match. It exclusively owns its
// players and history; every transition produces a structurally new state
// rather than mutating in place, which is what makes replay and undo work.
type GameState struct {
	GameID      string         `json:"gameId"`
	Seed        int32          `json:"seed"`
	Phase       Phase          `json:"phase"`
	Turn        string         `json:"turn"`
	Players     []*PlayerState `json:"players"`
	History     []*Action      `json:"history"`
	Seq         int            `json:"seq"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// Player returns the player with the given id, or nil
func (g *GameState) Player(playerID string) *PlayerState {
	for _, p := range g.Players {
		if p.PlayerID == playerID {
			return p
		}
	}

	return nil
}

// Opponent returns the other player, or nil if playerID is not in the game
func (g *GameState) Opponent(playerID string) *PlayerState {
	if g.Player(playerID) == nil {
		return nil
	}

	for _, p := range g.Players {
		if p.PlayerID != playerID {
			return p
		}
	}

	return nil
}

// clone returns a deep copy of the game state. The engine applies every
// action against a clone so a failed apply never leaves a partially
// modified state visible.
func (g *GameState) clone() *GameState {
	players := make([]*PlayerState, len(g.Players))
	for i, p := range g.Players {
		cp := *p
		cp.Piles = p.Piles.clone()
		players[i] = &cp
	}

	history := make([]*Action, len(g.History))
	copy(history, g.History)

	cp := *g
	cp.Players = players
	cp.History = history
	return &cp
}

func (p Piles) clone() Piles {
	return Piles{
		Reserve:    cloneCards(p.Reserve),
		Tableau:    clonePileSet(p.Tableau),
		Foundation: clonePileSet(p.Foundation),
	}
}

func cloneCards(cards []deck.Card) []deck.Card {
	cp := make([]deck.Card, len(cards))
	copy(cp, cards)
	return cp
}

func clonePileSet(piles [][]deck.Card) [][]deck.Card {
	cp := make([][]deck.Card, len(piles))
	for i, pile := range piles {
		cp[i] = cloneCards(pile)
	}

	return cp
}
