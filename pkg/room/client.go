package room

import (
	"fmt"

	"crapette-server/pkg/model"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is a connected spectator or player in a match room
type Client struct {
	ID        string
	Conn      *websocket.Conn
	MatchUUID string

	player *model.Player

	// Close will force the websocket loops to terminate with the message
	// sent to the client
	Close chan string

	// CloseError is an optional error that can be obtained after the Close
	// channel receives a message
	CloseError error

	send chan interface{}
}

// NewClient returns a new client for the match
func NewClient(conn *websocket.Conn, player *model.Player, matchUUID string) *Client {
	return &Client{
		ID:        uuid.New().String(),
		Conn:      conn,
		MatchUUID: matchUUID,
		player:    player,
		Close:     make(chan string, 1),
		send:      make(chan interface{}, 256),
	}
}

// Player returns the authenticated player behind this connection
func (c *Client) Player() *model.Player {
	return c.player
}

// Send sends a message to the client
// This method will not block. If the buffer is full, the messages will be dropped
func (c *Client) Send(msg interface{}) {
	select {
	case c.send <- msg:
	default:
	}
}

// SendChan returns a read-only channel of the client's outgoing messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a loggable identity for the client
func (c *Client) String() string {
	return fmt.Sprintf("client:%s player:%d match:%s", c.ID, c.player.ID, c.MatchUUID)
}
