package crapette

// ReconstructGameState rebuilds a game by dealing from the seed and folding
// every action over the fresh state in the given order. Reconstruction is
// best-effort: an action that fails to apply is skipped with a warning and
// returned in the second value so callers can detect drift, rather than
// aborting the whole rebuild. Callers must deliver actions already sorted
// by their logical sequence.
func (e *Engine) ReconstructGameState(gameID, player1ID, player2ID string, seed int32, actions []*Action) (*GameState, []*Action) {
	state := e.InitializeGame(gameID, player1ID, player2ID, seed)
	state.Phase = PhaseInProgress

	var skipped []*Action
	for _, action := range actions {
		result := e.ApplyAction(state, action)
		if !result.Success {
			e.logger.WithField("actionId", action.ActionID).
				WithField("type", action.Type).
				WithField("error", result.Error).
				Warn("skipping unreplayable action during reconstruction")
			skipped = append(skipped, action)
			continue
		}

		state = result.NewGameState
	}

	return state, skipped
}

// VerifyStateConsistency reconstructs a game from the action log and
// compares it against the live state. It is a coarse check over seq, turn,
// phase and both scores, not a full structural diff.
func (e *Engine) VerifyStateConsistency(current *GameState, actions []*Action) bool {
	reconstructed, _ := e.ReconstructGameState(
		current.GameID,
		current.Players[0].PlayerID,
		current.Players[1].PlayerID,
		current.Seed,
		actions,
	)

	return reconstructed.Seq == current.Seq &&
		reconstructed.Turn == current.Turn &&
		reconstructed.Phase == current.Phase &&
		reconstructed.Players[0].Score == current.Players[0].Score &&
		reconstructed.Players[1].Score == current.Players[1].Score
}
