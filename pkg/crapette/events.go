package crapette

import "time"

// EventType identifies a game event emitted by an apply
type EventType string

// game event types
const (
	EventMoveApplied        EventType = "MOVE_APPLIED"
	EventMoveRejected       EventType = "MOVE_REJECTED"
	EventCrapetteCalled     EventType = "CRAPETTE_CALLED"
	EventCrapetteValid      EventType = "CRAPETTE_VALID"
	EventCrapetteInvalid    EventType = "CRAPETTE_INVALID"
	EventTurnEnded          EventType = "TURN_ENDED"
	EventGameWon            EventType = "GAME_WON"
	EventPlayerResigned     EventType = "PLAYER_RESIGNED"
	EventPlayerDisconnected EventType = "PLAYER_DISCONNECTED"
	EventPlayerReconnected  EventType = "PLAYER_RECONNECTED"
)

// Event is a single game event. Events are transient; they are delivered to
// connected clients but never persisted.
type Event struct {
	Type      EventType              `json:"type"`
	PlayerID  string                 `json:"playerId,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
