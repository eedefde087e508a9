package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"campus-connect/internal/conversation"
	"campus-connect/internal/models"
	"campus-connect/internal/observability"
	"campus-connect/internal/repositories"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type notifier interface {
	NotifyUsers(ctx context.Context, actorID string, recipients []string, notificationType, message, link string) ([]models.Notification, error)
}

// RelayHandler terminates relay connections and dispatches client events.
type RelayHandler struct {
	hub           *Hub
	messages      repositories.MessageRepository
	groups        repositories.GroupRepository
	groupMessages repositories.GroupMessageRepository
	notifier      notifier
}

// NewRelayHandler constructs a RelayHandler.
func NewRelayHandler(hub *Hub, messages repositories.MessageRepository, groups repositories.GroupRepository, groupMessages repositories.GroupMessageRepository, notifier notifier) *RelayHandler {
	return &RelayHandler{
		hub:           hub,
		messages:      messages,
		groups:        groups,
		groupMessages: groupMessages,
		notifier:      notifier,
	}
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinRoomPayload struct {
	Room string `json:"room"`
}

type joinGroupPayload struct {
	GroupID string `json:"group_id"`
}

type directMessagePayload struct {
	ConversationID string    `json:"conversation_id"`
	To             string    `json:"to,omitempty"`
	Sender         string    `json:"sender"`
	Text           string    `json:"text"`
	TempID         string    `json:"temp_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type groupMessagePayload struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
	Text    string `json:"text"`
}

type savedPayload struct {
	TempID  string         `json:"temp_id,omitempty"`
	Message models.Message `json:"message"`
}

type errorPayload struct {
	TempID  string `json:"temp_id,omitempty"`
	Message string `json:"message"`
}

// Handle upgrades the connection and runs the client read loop. Identity is
// the client-supplied user id; there is no socket authentication beyond it.
func (h *RelayHandler) Handle(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = c.GetHeader("X-User-Id")
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user_id"})
		return
	}

	ctx, span := otel.Tracer("campus-connect/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(uuid.NewString(), userID, conn)
	client.IP = observability.IPFromRequest(c.Request)
	client.RequestID = observability.RequestIDFromRequest(c.Request)
	client.TraceID = span.SpanContext().TraceID().String()

	h.hub.Register(client)
	// Every connection listens on the user's personal room for notifications.
	h.hub.Join(UserRoom(userID), client)

	observability.IncWSActive("relay")
	observability.IncWSEvent("relay", "ws_connect")
	h.publishLifecycleEvent(ctx, client, "ws_connect", "")

	// The request context is canceled as soon as this handler returns; the
	// read loop and its storage calls outlive the handshake. Trace and span
	// values carry over, cancellation does not.
	loopCtx := context.WithoutCancel(ctx)

	go client.WritePump()
	go h.readLoop(loopCtx, client, conn)
}

func (h *RelayHandler) readLoop(ctx context.Context, client *Client, conn Conn) {
	var closeReason string
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
		observability.DecWSActive("relay")
		observability.IncWSEvent("relay", "ws_disconnect")
		h.publishLifecycleEvent(ctx, client, "ws_disconnect", closeReason)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("relay", "ws_error")
			}
			return
		}
		h.dispatch(ctx, client, data)
	}
}

func (h *RelayHandler) dispatch(ctx context.Context, client *Client, data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		observability.IncWSEvent("relay", "ws_bad_frame")
		log.Printf("ws bad frame conn=%s: %v", client.ID, err)
		return
	}

	observability.IncWSEvent("relay", f.Event)

	switch f.Event {
	case "join_room":
		h.handleJoinRoom(client, f.Data)
	case "join_group":
		h.handleJoinGroup(ctx, client, f.Data)
	case "send_message":
		h.handleDirectMessage(ctx, client, f.Data)
	case "send_group_message":
		h.handleGroupMessage(ctx, client, f.Data)
	default:
		observability.IncWSEvent("relay", "ws_unknown_event")
	}
}

// handleJoinRoom subscribes the connection to a conversation room. The join
// is validated against the participants encoded in the conversation id; room
// names are not an authorization token.
func (h *RelayHandler) handleJoinRoom(client *Client, data []byte) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		h.hub.EmitClient(client, "error", errorPayload{Message: "invalid room"})
		return
	}

	if !conversation.IsParticipant(p.Room, client.UserID) {
		h.hub.EmitClient(client, "error", errorPayload{Message: "not a participant of room"})
		return
	}

	h.hub.Join(p.Room, client)
}

// handleJoinGroup subscribes the connection to a group room after a
// membership check against the group aggregate.
func (h *RelayHandler) handleJoinGroup(ctx context.Context, client *Client, data []byte) {
	var p joinGroupPayload
	if err := json.Unmarshal(data, &p); err != nil || p.GroupID == "" {
		h.hub.EmitClient(client, "error", errorPayload{Message: "invalid group"})
		return
	}

	member, err := h.groups.IsMember(ctx, p.GroupID, client.UserID)
	if err != nil {
		log.Printf("ws membership check failed conn=%s group=%s: %v", client.ID, p.GroupID, err)
		h.hub.EmitClient(client, "error", errorPayload{Message: "membership check failed"})
		return
	}
	if !member {
		h.hub.EmitClient(client, "error", errorPayload{Message: "not a group member"})
		return
	}

	h.hub.Join(p.GroupID, client)
}

// handleDirectMessage fans out optimistically, then persists. The emitted
// copy is never retracted; on storage failure only the sender learns via
// send_error, and a reload will not show the message.
func (h *RelayHandler) handleDirectMessage(ctx context.Context, client *Client, data []byte) {
	var p directMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.hub.EmitClient(client, "error", errorPayload{Message: "invalid message payload"})
		return
	}
	if p.Sender == "" {
		p.Sender = client.UserID
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	room := p.ConversationID
	if room == "" && p.To != "" {
		id, err := conversation.ID(p.Sender, p.To)
		if err != nil {
			h.hub.EmitClient(client, "error", errorPayload{TempID: p.TempID, Message: "invalid participants"})
			return
		}
		room = id
		p.ConversationID = id
	}

	if room != "" {
		if !conversation.IsParticipant(room, client.UserID) {
			h.hub.EmitClient(client, "error", errorPayload{TempID: p.TempID, Message: "not a participant of conversation"})
			return
		}
		h.hub.EmitRoomExcept(room, client, "receive_message", p)
	} else {
		// Global chat mode: no conversation to address, broadcast to everyone
		// but the sender and skip persistence.
		h.hub.BroadcastExcept(client, "receive_message", p)
		return
	}

	msg, err := h.messages.Append(ctx, room, p.Sender, p.Text)
	if err != nil {
		log.Printf("ws message persist failed conn=%s conversation=%s: %v", client.ID, room, err)
		observability.IncWSEvent("relay", "ws_persist_error")
		h.hub.EmitClient(client, "send_error", errorPayload{TempID: p.TempID, Message: "message not saved"})
		return
	}

	h.hub.EmitClient(client, "message_saved", savedPayload{TempID: p.TempID, Message: msg})
}

// handleGroupMessage persists first and re-reads the identity-resolved record
// before fan-out, so every recipient, the sender's other sessions included,
// sees the canonical stored message.
func (h *RelayHandler) handleGroupMessage(ctx context.Context, client *Client, data []byte) {
	var p groupMessagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.GroupID == "" {
		h.hub.EmitClient(client, "error", errorPayload{Message: "invalid group message payload"})
		return
	}
	if p.UserID == "" {
		p.UserID = client.UserID
	}

	member, err := h.groups.IsMember(ctx, p.GroupID, p.UserID)
	if err != nil {
		log.Printf("ws membership check failed conn=%s group=%s: %v", client.ID, p.GroupID, err)
		h.hub.EmitClient(client, "error", errorPayload{Message: "membership check failed"})
		return
	}
	if !member {
		h.hub.EmitClient(client, "error", errorPayload{Message: "not a group member"})
		return
	}

	msg, err := h.groupMessages.CreateGroupMessage(ctx, p.GroupID, p.UserID, p.Text)
	if err != nil {
		log.Printf("ws group message persist failed conn=%s group=%s: %v", client.ID, p.GroupID, err)
		observability.IncWSEvent("relay", "ws_persist_error")
		h.hub.EmitClient(client, "send_error", errorPayload{Message: "message not saved"})
		return
	}

	h.hub.EmitRoom(p.GroupID, "receive_group_message", msg)

	if h.notifier != nil {
		members, err := h.groups.ListMembers(ctx, p.GroupID)
		if err != nil {
			log.Printf("ws group member list failed group=%s: %v", p.GroupID, err)
			return
		}
		if _, err := h.notifier.NotifyUsers(ctx, p.UserID, members, models.NotificationGroupMessage,
			msg.SenderUsername+" sent a message in your group", "/groups/"+p.GroupID); err != nil {
			log.Printf("ws group notification failed group=%s: %v", p.GroupID, err)
		}
	}
}

func (h *RelayHandler) publishLifecycleEvent(ctx context.Context, client *Client, event, reason string) {
	_ = observability.PublishEvent(ctx, "ws_events.relay", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload: observability.WSEventPayload{
			ConnID:     client.ID,
			UserID:     client.UserID,
			IP:         client.IP,
			Event:      event,
			DurationMS: time.Since(client.ConnectedAt).Milliseconds(),
			Reason:     reason,
		},
	}, observability.BuildHeaders(client.RequestID, client.TraceID))
}
