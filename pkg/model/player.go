package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crapette-server/pkg/db"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"
)

const playerColumns = `
players.id,
players.email,
players.display_name,
players.is_site_admin,
players.password_hash,
players.created,
players.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrInvalidEmailOrPassword is an error for an invalid email or password
var ErrInvalidEmailOrPassword = UserError("invalid email address and/or password")

// ErrDuplicateKey happens if a user tries to create a player with a taken email
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Player is a record in the `players` table
type Player struct {
	ID           int64  `json:"id"`
	Email        string `json:"-"`
	DisplayName  string `json:"displayName"`
	IsSiteAdmin  bool   `json:"isSiteAdmin"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.Email, &player.DisplayName, &player.IsSiteAdmin, &player.passwordHash, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player
func CreatePlayer(ctx context.Context, email, displayName, password, remoteAddr string) (*Player, error) {
	hashPassword, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO players (email, display_name, password_hash, remote_addr)
VALUES ($1, $2, $3, $4)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, email, displayName, hashPassword, remoteAddr)
	player, err := getPlayerByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// GetPlayerByEmail will return a player by the email address
func GetPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE lower(email) = lower($1)`

	row := db.Instance().QueryRowContext(ctx, query, email)
	return getPlayerByRow(row)
}

// GetPlayerByEmailAndPassword will return a player if the email and password are valid
func GetPlayerByEmailAndPassword(ctx context.Context, email, password string) (*Player, error) {
	player, err := GetPlayerByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidEmailOrPassword
		}

		return nil, err
	}

	if err := player.ValidatePassword(password); err != nil {
		return nil, err
	}

	return player, nil
}

// ValidatePassword will validate a player's password
// Returns nil if the password is valid
func (p *Player) ValidatePassword(password string) error {
	if err := argon2id.Compare(p.passwordHash, password); err != nil {
		return ErrInvalidEmailOrPassword
	}

	return nil
}

// SetIsSiteAdmin sets whether the player is a site admin
func (p *Player) SetIsSiteAdmin(ctx context.Context, isSiteAdmin bool) error {
	const query = `
UPDATE players
SET is_site_admin = $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, isSiteAdmin, p.ID); err != nil {
		return err
	}

	p.IsSiteAdmin = isSiteAdmin
	return nil
}

// LastPlayerCreatedAt returns the last time a player was created by the remote address
// If a player hasn't been created yet, this will return a nil error and a zero time.Time
func LastPlayerCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM players
WHERE remote_addr = $1`

	var created sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, remoteAddr).Scan(&created); err != nil {
		return time.Time{}, err
	}

	return created.Time, nil
}
