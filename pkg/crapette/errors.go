package crapette

import "errors"

// ErrGameNotInProgress is returned when an action arrives outside the IN_PROGRESS phase
var ErrGameNotInProgress = errors.New("game is not in progress")

// ErrNotYourTurn is returned when a player acts out of turn
var ErrNotYourTurn = errors.New("not your turn")

// ErrPlayerNotFound is returned when the acting or target player is not in the game
var ErrPlayerNotFound = errors.New("player not found")

// ErrInvalidMovePayload is returned when a MOVE_CARD payload is missing or malformed
var ErrInvalidMovePayload = errors.New("invalid move payload")

// ErrInvalidCrapettePayload is returned when a CRAPETTE payload is missing required fields
var ErrInvalidCrapettePayload = errors.New("invalid crapette payload")

// ErrCardsNotFound is returned when none of the named cards exist in the source pile
var ErrCardsNotFound = errors.New("cards to move not found")

// ErrCannotMoveToReserve is returned when a move targets a reserve pile
var ErrCannotMoveToReserve = errors.New("cannot move to reserve")

// ErrEmptySelection is returned when a move names no cards
var ErrEmptySelection = errors.New("no cards to move")

// ErrSourceEmpty is returned when the source pile has no cards
var ErrSourceEmpty = errors.New("source pile is empty")

// ErrNotOnTop is returned when the selection does not start at the top of the source pile
var ErrNotOnTop = errors.New("cards are not on top of source pile")

// ErrInvalidSequence is returned when a multi-card selection is not a valid tableau run
var ErrInvalidSequence = errors.New("cards do not form a valid sequence")

// ErrTooManyCards is returned when more than one card targets a foundation
var ErrTooManyCards = errors.New("can only move one card to foundation")

// ErrFoundationRejected is returned when the foundation placement rule rejects the card
var ErrFoundationRejected = errors.New("card cannot be placed on foundation")

// ErrTableauRejected is returned when the tableau placement rule rejects the card
var ErrTableauRejected = errors.New("card cannot be placed on tableau")

// ErrChallengedActionNotFound is returned when a CRAPETTE challenge names an unknown action
var ErrChallengedActionNotFound = errors.New("action to challenge not found")

// ErrNoActionsToUndo is returned when undo is requested with an empty history
var ErrNoActionsToUndo = errors.New("no actions to undo")

// ErrReplayFailed is returned when replaying the history prefix fails during undo
var ErrReplayFailed = errors.New("failed to replay history during undo")
