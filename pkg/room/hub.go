package room

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub tracks the websocket clients watching each match and fans broadcast
// messages out to them. Moves themselves arrive over HTTP; the hub only
// pushes the resulting updates.
type Hub struct {
	logger logrus.FieldLogger

	connect    chan *Client
	disconnect chan *Client
	broadcast  chan *Message

	mu      sync.RWMutex
	matches map[string]map[*Client]bool
}

// NewHub returns a new hub
func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		logger:     logger,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		broadcast:  make(chan *Message, 256),
		matches:    make(map[string]map[*Client]bool),
	}
}

// Run starts the hub's run loop in a new goroutine
func (h *Hub) Run() {
	go h.runLoop()
}

func (h *Hub) runLoop() {
	for {
		select {
		case client := <-h.connect:
			h.addClient(client)
		case client := <-h.disconnect:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.sendToMatch(msg)
		}
	}
}

// ClientConnected registers the client with its match room
func (h *Hub) ClientConnected(client *Client) {
	h.connect <- client
}

// ClientDisconnected removes the client from its match room
func (h *Hub) ClientDisconnected(client *Client) {
	h.disconnect <- client
}

// Broadcast sends the message to every client watching the match
func (h *Hub) Broadcast(msg *Message) {
	h.broadcast <- msg
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.matches[client.MatchUUID]
	if !ok {
		clients = make(map[*Client]bool)
		h.matches[client.MatchUUID] = clients
	}

	clients[client] = true
	h.logger.WithField("client", client.String()).Debug("client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.matches[client.MatchUUID]
	if !ok {
		return
	}

	delete(clients, client)
	if len(clients) == 0 {
		delete(h.matches, client.MatchUUID)
	}

	h.logger.WithField("client", client.String()).Debug("client disconnected")
}

func (h *Hub) sendToMatch(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.matches[msg.MatchUUID] {
		client.Send(msg)
	}
}

// ConnectedPlayerIDs returns the ids of players with a live connection to
// the match
func (h *Hub) ConnectedPlayerIDs(matchUUID string) map[int64]bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make(map[int64]bool)
	for client := range h.matches[matchUUID] {
		ids[client.Player().ID] = true
	}

	return ids
}

// ClientCount returns the number of clients watching the match
func (h *Hub) ClientCount(matchUUID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.matches[matchUUID])
}
