package crapette

import "sort"

// Difficulty selects how the AI picks among scored moves. It is a pure
// parameter, never persisted.
type Difficulty string

// AI difficulty tiers
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// mediumTopMoveChance is the probability the medium AI takes the best move
const mediumTopMoveChance = 0.8

// ScoreMove scores a candidate move. Scores are additive: a reserve to
// foundation move scores 150. Non-move actions score zero. Moves out of a
// foundation are penalized even though the enumeration never produces
// them.
func (e *Engine) ScoreMove(move *Action, _ *GameState, _ string) int {
	if move.Type != ActionMoveCard || move.Move == nil {
		return 0
	}

	score := 0
	payload := move.Move

	if payload.To.Pile == PileFoundation {
		score += 100
	}

	if payload.From.Pile == PileReserve {
		score += 50
	}

	if payload.From.Pile == PileTableau && payload.To.Pile == PileTableau {
		score += 10
	}

	if payload.From.Pile == PileFoundation {
		score -= 1000
	}

	return score
}

// SelectAIMove picks the AI's next action. With no legal moves it
// synthesizes an END_TURN. Moves are scored and stably sorted descending,
// so ties keep the enumeration order; hard always takes the top move,
// medium takes it with probability 0.8 (else the second best), and easy
// picks uniformly among the top three.
func (e *Engine) SelectAIMove(state *GameState, playerID string, difficulty Difficulty) *Action {
	legalMoves := e.LegalMovesForPlayer(state, playerID)
	if len(legalMoves) == 0 {
		return e.NewAction(playerID, ActionEndTurn, state.Seq)
	}

	sort.SliceStable(legalMoves, func(i, j int) bool {
		return e.ScoreMove(legalMoves[i], state, playerID) > e.ScoreMove(legalMoves[j], state, playerID)
	})

	selected := 0
	switch difficulty {
	case DifficultyEasy:
		top := 3
		if len(legalMoves) < top {
			top = len(legalMoves)
		}
		selected = e.rand.Intn(top)
	case DifficultyMedium:
		if e.rand.Float64() >= mediumTopMoveChance && len(legalMoves) > 1 {
			selected = 1
		}
	}

	return legalMoves[selected]
}

// EasyAIMove picks a move at the easy difficulty
func (e *Engine) EasyAIMove(state *GameState, playerID string) *Action {
	return e.SelectAIMove(state, playerID, DifficultyEasy)
}

// MediumAIMove picks a move at the medium difficulty
func (e *Engine) MediumAIMove(state *GameState, playerID string) *Action {
	return e.SelectAIMove(state, playerID, DifficultyMedium)
}

// HardAIMove picks the best-scored move. The same state always yields the
// same move.
func (e *Engine) HardAIMove(state *GameState, playerID string) *Action {
	return e.SelectAIMove(state, playerID, DifficultyHard)
}
