package room

import "crapette-server/pkg/crapette"

// Message is the envelope broadcast to every client watching a match
type Message struct {
	Key       string           `json:"key"`
	MatchUUID string           `json:"matchUuid"`
	Seq       int              `json:"seq"`
	Phase     crapette.Phase   `json:"phase,omitempty"`
	Turn      string           `json:"turn,omitempty"`
	Action    *crapette.Action `json:"action,omitempty"`
	Events    []crapette.Event `json:"events,omitempty"`
}

// NewActionMessage builds the broadcast for an applied action
func NewActionMessage(matchUUID string, state *crapette.GameState, action *crapette.Action, events []crapette.Event) *Message {
	return &Message{
		Key:       "action",
		MatchUUID: matchUUID,
		Seq:       state.Seq,
		Phase:     state.Phase,
		Turn:      state.Turn,
		Action:    action,
		Events:    events,
	}
}
