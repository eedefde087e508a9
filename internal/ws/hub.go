package ws

import (
	"encoding/json"
	"log"
	"sync"

	"campus-connect/internal/models"
	"campus-connect/internal/observability"
)

// Envelope frames every event sent to a client.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maintains active relay connections and their room subscriptions. Rooms
// are plain strings: conversation ids, group ids, and per-user rooms for
// notification pushes. Membership changes are atomic per connection.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Unregister removes a connection and all of its room subscriptions.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for room, conns := range h.rooms {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
}

// Join subscribes the connection to a named room.
func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
}

// InRoom reports whether the connection is subscribed to the room.
func (h *Hub) InRoom(room string, c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[room][c]
}

// EmitRoom delivers an event to every subscriber of the room.
func (h *Hub) EmitRoom(room, event string, data interface{}) {
	h.emitRoom(room, event, data, nil)
}

// EmitRoomExcept delivers an event to every subscriber of the room except one
// connection (the publisher's own).
func (h *Hub) EmitRoomExcept(room string, except *Client, event string, data interface{}) {
	h.emitRoom(room, event, data, except)
}

func (h *Hub) emitRoom(room, event string, data interface{}, except *Client) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		if c == except {
			continue
		}
		h.enqueue(c, payload)
	}
}

// BroadcastExcept delivers an event to every connection except the sender's.
// This is the undifferentiated global chat path.
func (h *Hub) BroadcastExcept(sender *Client, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c == sender {
			continue
		}
		h.enqueue(c, payload)
	}
}

// EmitClient delivers an event to a single connection.
func (h *Hub) EmitClient(c *Client, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.clients[c] {
		h.enqueue(c, payload)
	}
}

// PushNotification delivers a notification record to every open session of
// the recipient.
func (h *Hub) PushNotification(userID string, n models.Notification) {
	h.EmitRoom(UserRoom(userID), "notification", n)
}

// enqueue is non-blocking: a subscriber that cannot keep up loses the event.
// Callers hold at least a read lock.
func (h *Hub) enqueue(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		observability.IncWSEvent("relay", "ws_drop")
		log.Printf("ws send buffer full, dropping event conn=%s user=%s", c.ID, c.UserID)
	}
}

// UserRoom names the per-user room every connection auto-joins. The prefix
// keeps user rooms from colliding with conversation and group rooms.
func UserRoom(userID string) string {
	return "user:" + userID
}
