package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-connect/internal/models"
)

type fakeConn struct {
	incoming chan []byte
	written  chan []byte
	closed   chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan []byte, 16),
		written:  make(chan []byte, 16),
		closed:   make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data, ok := <-c.incoming:
		if !ok {
			return 0, nil, assert.AnError
		}
		return 1, data, nil
	case <-c.closed:
		return 0, nil, assert.AnError
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.written <- data
	return nil
}

func (c *fakeConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	return nil
}

func newTestClient(id, userID string) *Client {
	return NewClient(id, userID, newFakeConn())
}

func receiveEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case data := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Envelope{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected event: %s", data)
	default:
	}
}

func TestEmitRoomOnlyReachesSubscribers(t *testing.T) {
	hub := NewHub()

	alice := newTestClient("c1", "alice")
	bob := newTestClient("c2", "bob")
	eve := newTestClient("c3", "eve")
	hub.Register(alice)
	hub.Register(bob)
	hub.Register(eve)

	hub.Join("alice_bob", alice)
	hub.Join("alice_bob", bob)

	hub.EmitRoom("alice_bob", "receive_message", map[string]string{"text": "hi"})

	env := receiveEnvelope(t, alice)
	assert.Equal(t, "receive_message", env.Event)
	receiveEnvelope(t, bob)
	assertNoEvent(t, eve)
}

func TestEmitRoomExceptSkipsSender(t *testing.T) {
	hub := NewHub()

	alice := newTestClient("c1", "alice")
	bob := newTestClient("c2", "bob")
	hub.Register(alice)
	hub.Register(bob)
	hub.Join("alice_bob", alice)
	hub.Join("alice_bob", bob)

	hub.EmitRoomExcept("alice_bob", alice, "receive_message", map[string]string{"text": "hi"})

	receiveEnvelope(t, bob)
	assertNoEvent(t, alice)
}

func TestBroadcastExceptReachesAllOtherConnections(t *testing.T) {
	hub := NewHub()

	sender := newTestClient("c1", "alice")
	other1 := newTestClient("c2", "bob")
	other2 := newTestClient("c3", "eve")
	hub.Register(sender)
	hub.Register(other1)
	hub.Register(other2)

	hub.BroadcastExcept(sender, "receive_message", map[string]string{"text": "hello all"})

	receiveEnvelope(t, other1)
	receiveEnvelope(t, other2)
	assertNoEvent(t, sender)
}

func TestUnregisterReleasesRoomsAndClosesQueue(t *testing.T) {
	hub := NewHub()

	alice := newTestClient("c1", "alice")
	hub.Register(alice)
	hub.Join("alice_bob", alice)
	require.True(t, hub.InRoom("alice_bob", alice))

	hub.Unregister(alice)

	assert.False(t, hub.InRoom("alice_bob", alice))
	_, open := <-alice.send
	assert.False(t, open)

	// idempotent: a second unregister must not panic on the closed channel
	hub.Unregister(alice)
}

func TestJoinRequiresRegisteredClient(t *testing.T) {
	hub := NewHub()

	stray := newTestClient("c1", "alice")
	hub.Join("alice_bob", stray)

	assert.False(t, hub.InRoom("alice_bob", stray))
}

func TestPushNotificationUsesUserRoom(t *testing.T) {
	hub := NewHub()

	session1 := newTestClient("c1", "alice")
	session2 := newTestClient("c2", "alice")
	hub.Register(session1)
	hub.Register(session2)
	hub.Join(UserRoom("alice"), session1)
	hub.Join(UserRoom("alice"), session2)

	hub.PushNotification("alice", models.Notification{ID: "n1", RecipientID: "alice", Type: models.NotificationMessage})

	env1 := receiveEnvelope(t, session1)
	assert.Equal(t, "notification", env1.Event)
	receiveEnvelope(t, session2)
}

func TestEmitClientIgnoresUnregistered(t *testing.T) {
	hub := NewHub()

	gone := newTestClient("c1", "alice")
	hub.EmitClient(gone, "notification", nil)

	assertNoEvent(t, gone)
}
