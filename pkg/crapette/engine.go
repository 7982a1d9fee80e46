package crapette

import (
	"fmt"
	"math/rand"
	"time"

	"crapette-server/pkg/deck"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// score adjustments applied by the engine
const (
	winBonus        = 100
	resignBonus     = 50
	crapettePenalty = 10
	crapetteReward  = 5
)

// Engine owns the Crapette state machine. Every method is synchronous and
// either pure or copy-producing; the caller is responsible for serializing
// applies against a single game's lineage.
type Engine struct {
	logger logrus.FieldLogger

	// injectable for deterministic tests
	now   func() time.Time
	newID func() string
	rand  *rand.Rand
}

// New returns a new engine
func New(logger logrus.FieldLogger) *Engine {
	return &Engine{
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewAction returns a new action envelope for the player with a fresh id
// and timestamp. The payload fields are left for the caller to fill in.
func (e *Engine) NewAction(playerID string, actionType ActionType, seq int) *Action {
	return &Action{
		ActionID:  e.newID(),
		PlayerID:  playerID,
		Type:      actionType,
		Seq:       seq,
		Timestamp: e.now(),
	}
}

// InitializeGame shuffles a fresh deck with the seed and deals both
// players: 13 cards to each reserve, then two cards to each of the four
// tableau piles. The game starts in the STARTING phase with player 1 to
// move; the caller transitions it to IN_PROGRESS to begin play.
//
// Cards 42-51 of the shuffled deck are never dealt. The legacy deal only
// places 42 of the 52 cards and there is no stock pile to hold the rest;
// this layout is kept as-is so replays of recorded matches stay valid.
func (e *Engine) InitializeGame(gameID, player1ID, player2ID string, seed int32) *GameState {
	shuffled := deck.DeterministicShuffle(deck.New(), seed)

	dealTableau := func(offset int) [][]deck.Card {
		tableau := make([][]deck.Card, numTableauPiles)
		for i := range tableau {
			start := offset + i*tableauDealSize
			tableau[i] = cloneCards(shuffled[start : start+tableauDealSize])
		}
		return tableau
	}

	emptyFoundation := func() [][]deck.Card {
		foundation := make([][]deck.Card, numFoundationPiles)
		for i := range foundation {
			foundation[i] = []deck.Card{}
		}
		return foundation
	}

	players := []*PlayerState{
		{
			PlayerID:  player1ID,
			Name:      "Player 1",
			Connected: true,
			Piles: Piles{
				Reserve:    cloneCards(shuffled[0:reserveSize]),
				Tableau:    dealTableau(2 * reserveSize),
				Foundation: emptyFoundation(),
			},
		},
		{
			PlayerID:  player2ID,
			Name:      "Player 2",
			Connected: true,
			Piles: Piles{
				Reserve:    cloneCards(shuffled[reserveSize : 2*reserveSize]),
				Tableau:    dealTableau(2*reserveSize + numTableauPiles*tableauDealSize),
				Foundation: emptyFoundation(),
			},
		},
	}

	return &GameState{
		GameID:      gameID,
		Seed:        seed,
		Phase:       PhaseStarting,
		Turn:        player1ID,
		Players:     players,
		History:     []*Action{},
		Seq:         0,
		LastUpdated: e.now(),
	}
}

// ValidateAction checks an action against the current state without
// mutating anything. CRAPETTE, RESIGN and CHAT are exempt from the turn
// check; CRAPETTE is the interrupt mechanic and must be callable on the
// opponent's turn.
func (e *Engine) ValidateAction(state *GameState, action *Action) ValidationResult {
	if state.Phase != PhaseInProgress {
		return invalidResult(ErrGameNotInProgress)
	}

	if action.Type != ActionChat && action.Type != ActionResign && action.Type != ActionCrapette {
		if action.PlayerID != state.Turn {
			return invalidResult(ErrNotYourTurn)
		}
	}

	player := state.Player(action.PlayerID)
	if player == nil {
		return invalidResult(ErrPlayerNotFound)
	}

	switch action.Type {
	case ActionMoveCard:
		return e.validateMoveCard(player, action)
	case ActionEndTurn:
		return validResult(true)
	case ActionResign:
		return validResult(false)
	case ActionCrapette:
		payload := action.Crapette
		if payload == nil || payload.TargetPlayerID == "" || payload.ActionIDToChallenge == "" {
			return invalidResult(ErrInvalidCrapettePayload)
		}
		return validResult(false)
	case ActionChat:
		return validResult(false)
	default:
		return ValidationResult{Reason: fmt.Sprintf("unknown action type: %s", action.Type)}
	}
}

func (e *Engine) validateMoveCard(player *PlayerState, action *Action) ValidationResult {
	payload := action.Move
	if payload == nil || payload.CardIDs == nil {
		return invalidResult(ErrInvalidMovePayload)
	}

	if payload.To.Pile == PileReserve {
		return invalidResult(ErrCannotMoveToReserve)
	}

	sourcePile := player.Piles.pile(payload.From)
	if sourcePile == nil {
		return invalidResult(ErrInvalidMovePayload)
	}

	destPile := player.Piles.pile(payload.To)
	if destPile == nil {
		return invalidResult(ErrInvalidMovePayload)
	}

	cardsToMove := resolveCards(*sourcePile, payload.CardIDs)
	if len(cardsToMove) == 0 {
		return invalidResult(ErrCardsNotFound)
	}

	return ValidateMove(*sourcePile, *destPile, payload.To.Pile, cardsToMove)
}

// pile resolves a pile location to the underlying slice, or nil if the
// location is out of range
func (p *Piles) pile(loc PileLocation) *[]deck.Card {
	switch loc.Pile {
	case PileReserve:
		return &p.Reserve
	case PileTableau:
		if loc.Index < 0 || loc.Index >= len(p.Tableau) {
			return nil
		}
		return &p.Tableau[loc.Index]
	case PileFoundation:
		if loc.Index < 0 || loc.Index >= len(p.Foundation) {
			return nil
		}
		return &p.Foundation[loc.Index]
	}

	return nil
}

// resolveCards maps card ids to the actual cards in the source pile,
// silently dropping ids that do not resolve
func resolveCards(pile []deck.Card, cardIDs []string) []deck.Card {
	cards := make([]deck.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		for _, card := range pile {
			if card.ID == id {
				cards = append(cards, card)
				break
			}
		}
	}

	return cards
}

// ApplyAction validates the action and, on success, applies it to a deep
// copy of the state. The input state is never modified; on failure the
// result carries the rejection reason and no new state. Unexpected panics
// during mutation are recovered and surfaced as an error.
func (e *Engine) ApplyAction(state *GameState, action *Action) (result ApplyResult) {
	validation := e.ValidateAction(state, action)
	if !validation.Valid {
		return ApplyResult{Error: validation.Reason}
	}

	defer func() {
		if r := recover(); r != nil {
			result = ApplyResult{Error: fmt.Sprintf("%v", r)}
		}
	}()

	newState := state.clone()
	var events []Event

	switch action.Type {
	case ActionMoveCard:
		events = e.applyMoveCard(newState, action)
	case ActionEndTurn:
		newState.Turn = newState.Opponent(action.PlayerID).PlayerID
		events = []Event{e.event(EventTurnEnded, action.PlayerID, nil)}
	case ActionResign:
		newState.Phase = PhaseFinished
		newState.Opponent(action.PlayerID).Score += resignBonus
		events = []Event{e.event(EventPlayerResigned, action.PlayerID, map[string]interface{}{
			"reason": "Player resigned",
		})}
	case ActionCrapette:
		var err error
		events, err = e.applyCrapette(newState, action)
		if err != nil {
			return ApplyResult{Error: err.Error()}
		}
	case ActionChat:
		events = []Event{e.event(EventMoveApplied, action.PlayerID, map[string]interface{}{
			"message": action.Chat,
		})}
	}

	newState.History = append(newState.History, action)
	newState.Seq++
	newState.LastUpdated = e.now()

	return ApplyResult{
		Success:      true,
		NewGameState: newState,
		Events:       events,
	}
}

func (e *Engine) applyMoveCard(state *GameState, action *Action) []Event {
	payload := action.Move
	player := state.Player(action.PlayerID)

	sourcePile := player.Piles.pile(payload.From)
	destPile := player.Piles.pile(payload.To)

	// take the contiguous run starting at the first named card: that card
	// and everything above it, in existing relative order
	var run []deck.Card
	for _, cardID := range payload.CardIDs {
		for i, card := range *sourcePile {
			if card.ID == cardID {
				run = cloneCards((*sourcePile)[i:])
				*sourcePile = (*sourcePile)[:i]
				break
			}
		}
		if run != nil {
			break
		}
	}

	*destPile = append(*destPile, run...)

	var events []Event
	if HasPlayerWon(player) {
		state.Phase = PhaseFinished
		player.Score += winBonus
		events = append(events, e.event(EventGameWon, action.PlayerID, nil))
	} else {
		state.Turn = state.Opponent(action.PlayerID).PlayerID
		events = append(events, e.event(EventTurnEnded, action.PlayerID, nil))
	}

	return append(events, e.event(EventMoveApplied, action.PlayerID, nil))
}

// applyCrapette adjusts scores for an interrupt challenge. Every
// well-formed challenge against an existing action is currently accepted;
// the challenged move's board effect is not rolled back, only the scores
// move. See DESIGN.md for the open questions around this.
func (e *Engine) applyCrapette(state *GameState, action *Action) ([]Event, error) {
	payload := action.Crapette

	var challenged *Action
	for _, a := range state.History {
		if a.ActionID == payload.ActionIDToChallenge {
			challenged = a
			break
		}
	}
	if challenged == nil {
		return nil, ErrChallengedActionNotFound
	}

	target := state.Player(payload.TargetPlayerID)
	if target == nil {
		return nil, ErrPlayerNotFound
	}

	target.Score -= crapettePenalty
	state.Player(action.PlayerID).Score += crapetteReward

	return []Event{e.event(EventCrapetteValid, action.PlayerID, map[string]interface{}{
		"challengedActionId": payload.ActionIDToChallenge,
	})}, nil
}

func (e *Engine) event(eventType EventType, playerID string, data map[string]interface{}) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		Data:      data,
		Timestamp: e.now(),
	}
}

// UndoLastAction rebuilds the state by replaying every action in the
// history except the last against a fresh deal from the same seed. No
// inverse operations are stored anywhere; replaying the deterministic
// seed plus prefix is the canonical undo.
func (e *Engine) UndoLastAction(state *GameState) ApplyResult {
	if len(state.History) == 0 {
		return ApplyResult{Error: ErrNoActionsToUndo.Error()}
	}

	newState := e.InitializeGame(state.GameID, state.Players[0].PlayerID, state.Players[1].PlayerID, state.Seed)
	newState.Phase = PhaseInProgress

	for _, action := range state.History[:len(state.History)-1] {
		result := e.ApplyAction(newState, action)
		if !result.Success {
			return ApplyResult{Error: ErrReplayFailed.Error()}
		}

		newState = result.NewGameState
	}

	return ApplyResult{Success: true, NewGameState: newState, Events: []Event{}}
}
