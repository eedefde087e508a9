package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-connect/internal/repositories"
)

// NotificationHandler serves the per-user notification inbox.
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns a user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifications.ListForRecipient(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flips a single notification to read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("notification_id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
