package mux

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	appconfig "crapette-server/internal/config"
	"crapette-server/internal/rng"
	"crapette-server/pkg/crapette"
	"crapette-server/pkg/model"
	"crapette-server/pkg/room"

	"github.com/gorilla/mux"
)

type postMatchPayload struct {
	OpponentID int64 `json:"opponentId"`
}

type matchResponse struct {
	Match          *model.Match        `json:"match"`
	GameState      *crapette.GameState `json:"gameState"`
	SkippedActions int                 `json:"skippedActions"`
}

func (m *Mux) postMatch() http.HandlerFunc {
	var seeder rng.Crypto
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postMatchPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		if pp.OpponentID == player.ID {
			writeJSONError(w, http.StatusBadRequest, errors.New("cannot play against yourself"))
			return
		}

		if _, err := model.GetPlayerByID(r.Context(), pp.OpponentID); err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusBadRequest, errors.New("opponent does not exist"))
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		match, err := model.CreateMatch(r.Context(), player.ID, pp.OpponentID, seeder.Seed())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, match)
	}
}

func (m *Mux) getMatchUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := r.Context().Value(ctxMatchKey).(*model.Match)

		state, skipped, err := match.GameState(r.Context(), m.engine)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		connected := m.hub.ConnectedPlayerIDs(match.UUID)
		for _, ps := range state.Players {
			switch ps.PlayerID {
			case playerKeyFor(match, match.Player1ID):
				ps.Connected = connected[match.Player1ID]
			case playerKeyFor(match, match.Player2ID):
				ps.Connected = connected[match.Player2ID]
			}
		}

		writeJSON(w, http.StatusOK, matchResponse{
			Match:          match,
			GameState:      state,
			SkippedActions: len(skipped),
		})
	})
}

func (m *Mux) getMatchUUIDMoves() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := r.Context().Value(ctxMatchKey).(*model.Match)
		player := r.Context().Value(ctxPlayerKey).(*model.Player)

		state, _, err := match.GameState(r.Context(), m.engine)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		moves := m.engine.LegalMovesForPlayer(state, playerKeyFor(match, player.ID))
		if moves == nil {
			moves = []*crapette.Action{}
		}

		writeJSON(w, http.StatusOK, moves)
	})
}

type postActionPayload struct {
	Type     crapette.ActionType       `json:"type"`
	Move     *crapette.MovePayload     `json:"move"`
	Crapette *crapette.CrapettePayload `json:"crapette"`
	Chat     *crapette.ChatPayload     `json:"chat"`
}

func (m *Mux) postMatchUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := r.Context().Value(ctxMatchKey).(*model.Match)
		player := r.Context().Value(ctxPlayerKey).(*model.Player)

		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Type == crapette.ActionUndo {
			m.undoLastAction(w, r, match)
			return
		}

		state, _, err := match.GameState(r.Context(), m.engine)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		action := m.engine.NewAction(playerKeyFor(match, player.ID), pp.Type, state.Seq)
		action.Move = pp.Move
		action.Crapette = pp.Crapette
		action.Chat = pp.Chat

		m.applyAndRespond(r.Context(), w, match, state, action)
	})
}

type postAIMovePayload struct {
	Difficulty crapette.Difficulty `json:"difficulty"`
}

func (m *Mux) postMatchUUIDAIMove() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := r.Context().Value(ctxMatchKey).(*model.Match)

		var pp postAIMovePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		difficulty := pp.Difficulty
		if difficulty == "" {
			difficulty = crapette.DifficultyMedium
		}

		state, _, err := match.GameState(r.Context(), m.engine)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if delay := appconfig.Instance().AI.ThinkDelayMS; delay > 0 {
			time.Sleep(time.Duration(delay) * time.Millisecond)
		}

		action := m.engine.SelectAIMove(state, state.Turn, difficulty)
		m.applyAndRespond(r.Context(), w, match, state, action)
	})
}

func (m *Mux) postMatchUUIDUndo() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := r.Context().Value(ctxMatchKey).(*model.Match)
		m.undoLastAction(w, r, match)
	})
}

func (m *Mux) undoLastAction(w http.ResponseWriter, r *http.Request, match *model.Match) {
	state, _, err := match.GameState(r.Context(), m.engine)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	result := m.engine.UndoLastAction(state)
	if !result.Success {
		writeJSONError(w, http.StatusBadRequest, errors.New(result.Error))
		return
	}

	if err := match.DeleteLastAction(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	match.SyncFromState(result.NewGameState)
	if err := match.Save(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	m.hub.Broadcast(room.NewActionMessage(match.UUID, result.NewGameState, nil, result.Events))

	writeJSON(w, http.StatusOK, result)
}

type verifyResponse struct {
	Consistent     bool `json:"consistent"`
	Seq            int  `json:"seq"`
	SkippedActions int  `json:"skippedActions"`
}

func (m *Mux) getMatchUUIDVerify() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		match := r.Context().Value(ctxMatchKey).(*model.Match)

		actions, err := match.Actions(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		p1, p2 := match.PlayerKeys()
		state, skipped := m.engine.ReconstructGameState(match.UUID, p1, p2, match.Seed, actions)

		consistent := m.engine.VerifyStateConsistency(state, actions) &&
			len(skipped) == 0 &&
			match.Seq == state.Seq &&
			match.Phase == state.Phase &&
			match.Turn == state.Turn &&
			match.Score1 == state.Players[0].Score &&
			match.Score2 == state.Players[1].Score

		writeJSON(w, http.StatusOK, verifyResponse{
			Consistent:     consistent,
			Seq:            state.Seq,
			SkippedActions: len(skipped),
		})
	})
}

// applyAndRespond runs the shared tail of every action handler: apply the
// action to the reconstructed state, persist it, broadcast it, and write
// the apply result back to the caller
func (m *Mux) applyAndRespond(ctx context.Context, w http.ResponseWriter, match *model.Match, state *crapette.GameState, action *crapette.Action) {
	result := m.engine.ApplyAction(state, action)
	if !result.Success {
		writeJSONError(w, http.StatusBadRequest, errors.New(result.Error))
		return
	}

	if err := match.AppendAction(ctx, action.Seq, action); err != nil {
		if err == model.ErrDuplicateAction {
			writeJSONError(w, http.StatusConflict, err)
		} else {
			writeJSONError(w, http.StatusInternalServerError, err)
		}
		return
	}

	match.SyncFromState(result.NewGameState)
	if err := match.Save(ctx); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	m.hub.Broadcast(room.NewActionMessage(match.UUID, result.NewGameState, action, result.Events))

	writeJSON(w, http.StatusOK, result)
}

// playerKeyFor maps a database player id to the in-game seat key
func playerKeyFor(match *model.Match, playerID int64) string {
	p1, p2 := match.PlayerKeys()
	if match.Player1ID == playerID {
		return p1
	}

	return p2
}

func (m *Mux) matchMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matchUUID := mux.Vars(r)["uuid"]
		match, err := model.GetMatchByUUID(r.Context(), matchUUID)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		if !match.HasPlayer(player.ID) {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxMatchKey, match)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
