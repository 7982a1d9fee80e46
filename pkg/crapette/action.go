package crapette

import "time"

// ActionType identifies a player command
type ActionType string

// action types
const (
	ActionMoveCard ActionType = "MOVE_CARD"
	ActionDraw     ActionType = "DRAW"
	ActionEndTurn  ActionType = "END_TURN"
	ActionUndo     ActionType = "UNDO"
	ActionResign   ActionType = "RESIGN"
	ActionCrapette ActionType = "CRAPETTE"
	ActionReady    ActionType = "READY"
	ActionChat     ActionType = "CHAT"
)

// MovePayload is the payload for a MOVE_CARD action. CardIDs must be a
// contiguous, top-anchored run from the source pile.
type MovePayload struct {
	From    PileLocation `json:"from"`
	To      PileLocation `json:"to"`
	CardIDs []string     `json:"cardIds"`
}

// CrapettePayload is the payload for a CRAPETTE interrupt. The challenge
// targets a previously applied action by id.
type CrapettePayload struct {
	TargetPlayerID      string `json:"targetPlayerId"`
	ActionIDToChallenge string `json:"actionIdToChallenge"`
	Reason              string `json:"reason"`
}

// ChatPayload is the payload for a CHAT action. The text is not interpreted
// by the engine.
type ChatPayload struct {
	Text string `json:"text"`
}

// Action is an immutable, serializable player command. Exactly one payload
// field may be set, matching Type. Actions are appended to the game history
// on successful apply and never mutated afterwards; the history is the sole
// source of truth for replay.
type Action struct {
	ActionID string     `json:"actionId"`
	PlayerID string     `json:"playerId"`
	Type     ActionType `json:"type"`

	Move     *MovePayload     `json:"move,omitempty"`
	Crapette *CrapettePayload `json:"crapette,omitempty"`
	Chat     *ChatPayload     `json:"chat,omitempty"`

	Seq       int       `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationResult is the outcome of validating an action or move
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	TurnEnd bool   `json:"turnEnd,omitempty"`
}

// ApplyResult is the outcome of applying an action. On success NewGameState
// holds the structurally new state and Events the ordered list of game
// events; the input state is never modified.
type ApplyResult struct {
	Success      bool       `json:"success"`
	NewGameState *GameState `json:"newGameState,omitempty"`
	Events       []Event    `json:"events,omitempty"`
	Error        string     `json:"error,omitempty"`
}

func validResult(turnEnd bool) ValidationResult {
	return ValidationResult{Valid: true, TurnEnd: turnEnd}
}

func invalidResult(err error) ValidationResult {
	return ValidationResult{Reason: err.Error()}
}
