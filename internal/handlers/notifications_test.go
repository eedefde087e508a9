package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-connect/internal/mocks"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories"
)

func notificationRouter(repo *mocks.NotificationRepositoryMock) *gin.Engine {
	handler := NewNotificationHandler(repo)
	router := gin.New()
	router.GET("/notifications/:user_id", handler.List)
	router.PUT("/notifications/:notification_id/read", handler.MarkRead)
	return router
}

func TestListNotificationsNewestFirst(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("ListForRecipient", mock.Anything, "alice").Return([]models.Notification{
		{ID: "n2", RecipientID: "alice", Type: models.NotificationNewEvent},
		{ID: "n1", RecipientID: "alice", Type: models.NotificationMessage},
	}, nil)

	router := notificationRouter(repo)
	w := performJSON(t, router, http.MethodGet, "/notifications/alice", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 2)
	assert.Equal(t, "n2", resp.Notifications[0].ID)
}

func TestMarkReadFlipsFlag(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("MarkRead", mock.Anything, "n1").Return(nil)

	router := notificationRouter(repo)
	w := performJSON(t, router, http.MethodPut, "/notifications/n1/read", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("MarkRead", mock.Anything, "nope").Return(repositories.ErrNotificationNotFound)

	router := notificationRouter(repo)
	w := performJSON(t, router, http.MethodPut, "/notifications/nope/read", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
