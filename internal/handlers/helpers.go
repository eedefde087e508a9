package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campus-connect/internal/models"
)

const requestIDContextKey = "request_id"

// notifier is the fan-out surface producers depend on.
type notifier interface {
	NotifyAllExcept(ctx context.Context, actorID, notificationType, message, link string) ([]models.Notification, error)
	NotifyUsers(ctx context.Context, actorID string, recipients []string, notificationType, message, link string) ([]models.Notification, error)
}

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

func userIDFromContext(c *gin.Context) string {
	return c.GetString("userID")
}
