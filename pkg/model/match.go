package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crapette-server/pkg/crapette"
	"crapette-server/pkg/db"
	"crapette-server/pkg/token"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const inviteCodeLength = 6

// ErrDuplicateAction happens when two actions race for the same sequence
// number; the authoritative history is a single append-only sequence, so
// the loser must re-validate against the newer state.
var ErrDuplicateAction = errors.New("an action with that sequence already exists")

const matchColumns = `
matches.uuid,
matches.invite_code,
matches.seed,
matches.phase,
matches.turn,
matches.seq,
matches.player1_id,
matches.player2_id,
matches.score1,
matches.score2,
matches.created,
matches.updated`

// Match is a record in the `matches` table. It mirrors the replicated
// metadata of a game; the board itself is always reconstructed from the
// seed plus the ordered action log.
type Match struct {
	UUID       string         `json:"uuid"`
	InviteCode string         `json:"inviteCode"`
	Seed       int32          `json:"seed"`
	Phase      crapette.Phase `json:"phase"`
	Turn       string         `json:"turn"`
	Seq        int            `json:"seq"`
	Player1ID  int64          `json:"player1Id"`
	Player2ID  int64          `json:"player2Id"`
	Score1     int            `json:"score1"`
	Score2     int            `json:"score2"`
	Created    time.Time      `json:"created"`
	Updated    time.Time      `json:"updated"`
}

func getMatchByRow(row db.Scanner) (*Match, error) {
	var m Match
	if err := row.Scan(&m.UUID, &m.InviteCode, &m.Seed, &m.Phase, &m.Turn, &m.Seq, &m.Player1ID, &m.Player2ID, &m.Score1, &m.Score2, &m.Created, &m.Updated); err != nil {
		return nil, err
	}

	return &m, nil
}

// CreateMatch creates a new match between the two players
func CreateMatch(ctx context.Context, player1ID, player2ID int64, seed int32) (*Match, error) {
	inviteCode, err := token.Generate(inviteCodeLength)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO matches (uuid, invite_code, seed, phase, turn, player1_id, player2_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + matchColumns

	row := db.Instance().QueryRowContext(ctx, query,
		uuid.New().String(), inviteCode, seed, crapette.PhaseInProgress, playerKey(player1ID), player1ID, player2ID)
	return getMatchByRow(row)
}

// GetMatchByUUID returns the match with the given UUID
func GetMatchByUUID(ctx context.Context, matchUUID string) (*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, matchUUID)
	return getMatchByRow(row)
}

// GetMatches returns matches ordered by most recent first
func GetMatches(ctx context.Context, start int64, rows int) ([]*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
ORDER BY created DESC
OFFSET $1 LIMIT $2`

	dbRows, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var matches []*Match
	for dbRows.Next() {
		match, err := getMatchByRow(dbRows)
		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, dbRows.Err()
}

// Save persists the replicated metadata (phase, turn, seq, scores)
func (m *Match) Save(ctx context.Context) error {
	const query = `
UPDATE matches
SET phase = $1,
    turn = $2,
    seq = $3,
    score1 = $4,
    score2 = $5,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $6`

	_, err := db.Instance().ExecContext(ctx, query, m.Phase, m.Turn, m.Seq, m.Score1, m.Score2, m.UUID)
	return err
}

// AppendAction appends an applied action to the match's ordered log. The
// sequence is the action's position in the authoritative history; the
// unique index makes concurrent writers fail rather than fork the history.
func (m *Match) AppendAction(ctx context.Context, seq int, action *crapette.Action) error {
	b, err := json.Marshal(action)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO match_actions (match_uuid, seq, action)
VALUES ($1, $2, $3)`

	if _, err := db.Instance().ExecContext(ctx, query, m.UUID, seq, b); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateAction
		}

		return err
	}

	return nil
}

// DeleteLastAction removes the most recent action from the match's log.
// Undo is replay-based, so dropping the tail row is all the persistence
// an undo needs.
func (m *Match) DeleteLastAction(ctx context.Context) error {
	const query = `
DELETE FROM match_actions
WHERE match_uuid = $1
  AND seq = (SELECT MAX(seq) FROM match_actions WHERE match_uuid = $1)`

	_, err := db.Instance().ExecContext(ctx, query, m.UUID)
	return err
}

// Actions returns the match's action log sorted by sequence, ready for
// replay
func (m *Match) Actions(ctx context.Context) ([]*crapette.Action, error) {
	const query = `
SELECT action
FROM match_actions
WHERE match_uuid = $1
ORDER BY seq`

	rows, err := db.Instance().QueryContext(ctx, query, m.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*crapette.Action
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}

		var action crapette.Action
		if err := json.Unmarshal(b, &action); err != nil {
			return nil, err
		}

		actions = append(actions, &action)
	}

	return actions, rows.Err()
}

// SyncFromState copies the replicated metadata out of a game state.
// Call Save() afterwards to persist.
func (m *Match) SyncFromState(state *crapette.GameState) {
	m.Phase = state.Phase
	m.Turn = state.Turn
	m.Seq = state.Seq
	m.Score1 = state.Players[0].Score
	m.Score2 = state.Players[1].Score
}

// playerKey is the stable in-game identifier for a player's seat
func playerKey(playerID int64) string {
	return fmt.Sprintf("player-%d", playerID)
}

// PlayerKeys returns the stable in-game identifiers for the two seats
func (m *Match) PlayerKeys() (string, string) {
	return playerKey(m.Player1ID), playerKey(m.Player2ID)
}

// HasPlayer returns true if the player occupies one of the match's seats
func (m *Match) HasPlayer(playerID int64) bool {
	return m.Player1ID == playerID || m.Player2ID == playerID
}

// GameState reconstructs the authoritative board from the seed and the
// stored action log
func (m *Match) GameState(ctx context.Context, engine *crapette.Engine) (*crapette.GameState, []*crapette.Action, error) {
	actions, err := m.Actions(ctx)
	if err != nil {
		return nil, nil, err
	}

	p1, p2 := m.PlayerKeys()
	state, skipped := engine.ReconstructGameState(m.UUID, p1, p2, m.Seed, actions)
	return state, skipped, nil
}
