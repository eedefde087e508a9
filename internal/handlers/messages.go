package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/conversation"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
)

// MessageHandler manages direct-message endpoints.
type MessageHandler struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
	notifier notifier
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages repositories.MessageRepository, users repositories.UserRepository, notifier notifier) *MessageHandler {
	return &MessageHandler{messages: messages, users: users, notifier: notifier}
}

// PostMessage appends a message to a conversation. The conversation id is
// derived from the caller and the recipient when not supplied; a supplied id
// must include the caller.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	userID := userIDFromContext(c)

	var req struct {
		ConversationID string `json:"conversation_id"`
		To             string `json:"to"`
		Text           string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		id, err := conversation.ID(userID, req.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participants"})
			return
		}
		conversationID = id
	}
	if !conversation.IsParticipant(conversationID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation participant"})
		return
	}

	msg, err := h.messages.Append(c.Request.Context(), conversationID, userID, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if h.notifier != nil {
		a, b, err := conversation.Participants(conversationID)
		if err == nil {
			sender := "Someone"
			if h.users != nil {
				if u, err := h.users.GetUser(c.Request.Context(), userID); err == nil {
					sender = u.Username
				}
			}
			h.notifier.NotifyUsers(c.Request.Context(), userID, []string{a, b}, models.NotificationMessage,
				sender+" sent you a message", "/conversations/"+conversationID)
		}
	}

	c.JSON(http.StatusCreated, msg)
}

// GetConversation returns the full conversation history in insertion order.
// Reads are scoped to the two participants encoded in the conversation id.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	conversationID := c.Param("conversation_id")
	userID := userIDFromContext(c)

	if _, _, err := conversation.Participants(conversationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	if !conversation.IsParticipant(conversationID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation participant"})
		return
	}

	msgs, err := h.messages.ListByConversation(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
