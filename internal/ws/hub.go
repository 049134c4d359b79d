package ws

import (
	"encoding/json"
	"sync"
)

// Client is one websocket connection joined to a session room.
type Client struct {
	UserID uint
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// trySend queues data unless the client closed or its buffer is full.
// Sharing the close mutex keeps the send out of the window between
// closed=true and close(Send).
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// Room holds the two participants of one consultation session.
type Room struct {
	SessionID uint
	mu        sync.RWMutex
	clients   map[*Client]struct{}
}

func NewRoom(sessionID uint) *Room {
	return &Room{SessionID: sessionID, clients: make(map[*Client]struct{})}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *Room) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *Room) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients) == 0
}

// Broadcast sends the payload to everyone in the room except from.
// Slow consumers are skipped, not waited on.
func (r *Room) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

// Hub holds all session rooms.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]*Room)}
}

func (h *Hub) GetOrCreateRoom(sessionID uint) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[sessionID]; ok {
		return r
	}
	r := NewRoom(sessionID)
	h.rooms[sessionID] = r
	return r
}

func (h *Hub) RemoveRoom(sessionID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, sessionID)
}
