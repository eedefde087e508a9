package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-connect/internal/mocks"
	"campus-connect/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects the identity the middleware would normally resolve.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func messageRouter(userID string, messages *mocks.MessageRepositoryMock, users *mocks.UserRepositoryMock, notifier *mocks.NotifierMock) *gin.Engine {
	handler := NewMessageHandler(messages, users, notifier)
	router := gin.New()
	router.POST("/messages", asUser(userID), handler.PostMessage)
	router.GET("/conversations/:conversation_id/messages", asUser(userID), handler.GetConversation)
	return router
}

func TestPostMessageDerivesSymmetricConversationID(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	notifier := new(mocks.NotifierMock)

	// caller sorts after recipient, the derived id still leads with the
	// smaller participant
	stored := models.Message{ID: "m1", ConversationID: "alice_bob", SenderID: "bob", Text: "hi"}
	messages.On("Append", mock.Anything, "alice_bob", "bob", "hi").Return(stored, nil)
	users.On("GetUser", mock.Anything, "bob").Return(models.User{ID: "bob", Username: "bob"}, nil)
	notifier.On("NotifyUsers", mock.Anything, "bob", []string{"alice", "bob"}, models.NotificationMessage, mock.Anything, "/conversations/alice_bob").
		Return([]models.Notification{}, nil)

	router := messageRouter("bob", messages, users, notifier)
	w := performJSON(t, router, http.MethodPost, "/messages", gin.H{"to": "alice", "text": "hi"})

	assert.Equal(t, http.StatusCreated, w.Code)
	messages.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPostMessageRejectsForeignConversation(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)

	router := messageRouter("eve", messages, new(mocks.UserRepositoryMock), new(mocks.NotifierMock))
	w := performJSON(t, router, http.MethodPost, "/messages", gin.H{"conversation_id": "alice_bob", "text": "intruding"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	messages.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostMessageRejectsEmptyRecipient(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)

	router := messageRouter("bob", messages, new(mocks.UserRepositoryMock), new(mocks.NotifierMock))
	w := performJSON(t, router, http.MethodPost, "/messages", gin.H{"to": "", "text": "hi"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	messages.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetConversationPreservesInsertionOrder(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)

	history := []models.Message{
		{ID: "m1", ConversationID: "alice_bob", SenderID: "alice", Text: "first"},
		{ID: "m2", ConversationID: "alice_bob", SenderID: "bob", Text: "second"},
		{ID: "m3", ConversationID: "alice_bob", SenderID: "alice", Text: "third"},
	}
	messages.On("ListByConversation", mock.Anything, "alice_bob").Return(history, nil)

	router := messageRouter("alice", messages, new(mocks.UserRepositoryMock), new(mocks.NotifierMock))
	w := performJSON(t, router, http.MethodGet, "/conversations/alice_bob/messages", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "first", resp.Messages[0].Text)
	assert.Equal(t, "second", resp.Messages[1].Text)
	assert.Equal(t, "third", resp.Messages[2].Text)
}

func TestGetConversationRejectsNonParticipant(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)

	router := messageRouter("eve", messages, new(mocks.UserRepositoryMock), new(mocks.NotifierMock))
	w := performJSON(t, router, http.MethodGet, "/conversations/alice_bob/messages", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	messages.AssertNotCalled(t, "ListByConversation", mock.Anything, mock.Anything)
}

func TestGetConversationRejectsMalformedID(t *testing.T) {
	router := messageRouter("alice", new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock), new(mocks.NotifierMock))
	w := performJSON(t, router, http.MethodGet, "/conversations/_bob/messages", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
