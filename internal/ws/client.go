package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the subset of *websocket.Conn the relay uses. Tests substitute an
// in-memory implementation.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one relay connection. A client may join any number of rooms; room
// membership is transport-level only and released on disconnect.
type Client struct {
	ID          string
	UserID      string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time

	conn Conn
	send chan []byte
}

// NewClient wraps a connection for hub use.
func NewClient(id, userID string, conn Conn) *Client {
	return &Client{
		ID:          id,
		UserID:      userID,
		ConnectedAt: time.Now(),
		conn:        conn,
		send:        make(chan []byte, 64),
	}
}

// WritePump drains the send queue onto the connection. Run as a goroutine;
// it returns when the send channel is closed or a write fails.
func (c *Client) WritePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
