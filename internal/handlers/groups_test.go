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

type emitRecorder struct {
	room  string
	event string
	data  interface{}
	calls int
}

func (e *emitRecorder) EmitRoom(room, event string, data interface{}) {
	e.room = room
	e.event = event
	e.data = data
	e.calls++
}

type groupFixture struct {
	groups        *mocks.GroupRepositoryMock
	groupMessages *mocks.GroupMessageRepositoryMock
	groupFiles    *mocks.GroupFileRepositoryMock
	users         *mocks.UserRepositoryMock
	relay         *emitRecorder
	notifier      *mocks.NotifierMock
	router        *gin.Engine
}

func newGroupFixture(userID string) *groupFixture {
	f := &groupFixture{
		groups:        new(mocks.GroupRepositoryMock),
		groupMessages: new(mocks.GroupMessageRepositoryMock),
		groupFiles:    new(mocks.GroupFileRepositoryMock),
		users:         new(mocks.UserRepositoryMock),
		relay:         &emitRecorder{},
		notifier:      new(mocks.NotifierMock),
	}
	handler := NewGroupHandler(f.groups, f.groupMessages, f.groupFiles, f.users, f.relay, f.notifier, nil)

	f.router = gin.New()
	f.router.POST("/groups", asUser(userID), handler.CreateGroup)
	f.router.GET("/groups", handler.ListGroups)
	f.router.GET("/groups/:group_id", handler.GetGroup)
	f.router.PUT("/groups/:group_id/join", asUser(userID), handler.ToggleJoin)
	f.router.POST("/groups/:group_id/members", asUser(userID), handler.AddMember)
	f.router.GET("/groups/:group_id/messages", asUser(userID), handler.GetGroupMessages)
	f.router.POST("/groups/:group_id/messages", asUser(userID), handler.PostGroupMessage)
	f.router.GET("/groups/:group_id/files", asUser(userID), handler.ListFiles)
	f.router.POST("/groups/:group_id/files", asUser(userID), handler.AddFile)
	return f
}

func TestCreateGroupEnrollsCreator(t *testing.T) {
	f := newGroupFixture("alice")

	created := models.Group{ID: "g1", Name: "Algorithms", Subject: "CS", CreatedBy: "alice", Members: []string{"alice"}}
	f.groups.On("CreateGroup", mock.Anything, mock.MatchedBy(func(g models.Group) bool {
		return g.Name == "Algorithms" && g.CreatedBy == "alice"
	})).Return(created, nil)

	w := performJSON(t, f.router, http.MethodPost, "/groups", gin.H{"name": "Algorithms", "subject": "CS"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.Group
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Members, "alice")
	f.groups.AssertExpectations(t)
}

func TestToggleJoinRoundTrip(t *testing.T) {
	f := newGroupFixture("bob")

	// not a member yet: toggle joins; toggle again leaves
	f.groups.On("ToggleJoin", mock.Anything, "g1", "bob").Return(true, nil).Once()
	f.groups.On("ToggleJoin", mock.Anything, "g1", "bob").Return(false, nil).Once()

	first := performJSON(t, f.router, http.MethodPut, "/groups/g1/join", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"joined":true}`, first.Body.String())

	second := performJSON(t, f.router, http.MethodPut, "/groups/g1/join", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"joined":false}`, second.Body.String())

	f.groups.AssertExpectations(t)
}

func TestToggleJoinUnknownGroup(t *testing.T) {
	f := newGroupFixture("bob")
	f.groups.On("ToggleJoin", mock.Anything, "nope", "bob").Return(false, repositories.ErrGroupNotFound)

	w := performJSON(t, f.router, http.MethodPut, "/groups/nope/join", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddMemberResolvesUsername(t *testing.T) {
	f := newGroupFixture("alice")

	f.users.On("GetUserByUsername", mock.Anything, "bob").Return(models.User{ID: "u-bob", Username: "bob"}, nil)
	f.groups.On("AddMember", mock.Anything, "g1", "u-bob").Return(nil)

	w := performJSON(t, f.router, http.MethodPost, "/groups/g1/members", gin.H{"username": "bob"})

	assert.Equal(t, http.StatusCreated, w.Code)
	f.groups.AssertExpectations(t)
}

func TestAddMemberUnknownUsername(t *testing.T) {
	f := newGroupFixture("alice")
	f.users.On("GetUserByUsername", mock.Anything, "ghost").Return(models.User{}, repositories.ErrUserNotFound)

	w := performJSON(t, f.router, http.MethodPost, "/groups/g1/members", gin.H{"username": "ghost"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.groups.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMemberAlreadyPresent(t *testing.T) {
	f := newGroupFixture("alice")
	f.users.On("GetUserByUsername", mock.Anything, "bob").Return(models.User{ID: "u-bob"}, nil)
	f.groups.On("AddMember", mock.Anything, "g1", "u-bob").Return(repositories.ErrAlreadyMember)

	w := performJSON(t, f.router, http.MethodPost, "/groups/g1/members", gin.H{"username": "bob"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPostGroupMessagePersistsThenEmitsAndNotifies(t *testing.T) {
	f := newGroupFixture("alice")

	stored := models.GroupMessage{ID: "gm1", GroupID: "g1", SenderID: "alice", SenderUsername: "alice", Text: "hi team"}
	f.groups.On("IsMember", mock.Anything, "g1", "alice").Return(true, nil)
	f.groupMessages.On("CreateGroupMessage", mock.Anything, "g1", "alice", "hi team").Return(stored, nil)
	f.groups.On("ListMembers", mock.Anything, "g1").Return([]string{"alice", "bob"}, nil)
	f.notifier.On("NotifyUsers", mock.Anything, "alice", []string{"alice", "bob"}, models.NotificationGroupMessage, mock.Anything, "/groups/g1").
		Return([]models.Notification{}, nil)

	w := performJSON(t, f.router, http.MethodPost, "/groups/g1/messages", gin.H{"text": "hi team"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, f.relay.calls)
	assert.Equal(t, "g1", f.relay.room)
	assert.Equal(t, "receive_group_message", f.relay.event)
	assert.Equal(t, stored, f.relay.data)
	f.notifier.AssertExpectations(t)
}

func TestPostGroupMessageRejectsNonMember(t *testing.T) {
	f := newGroupFixture("eve")
	f.groups.On("IsMember", mock.Anything, "g1", "eve").Return(false, nil)

	w := performJSON(t, f.router, http.MethodPost, "/groups/g1/messages", gin.H{"text": "let me in"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, f.relay.calls)
	f.groupMessages.AssertNotCalled(t, "CreateGroupMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetGroupMessagesScopedToMembers(t *testing.T) {
	f := newGroupFixture("eve")
	f.groups.On("IsMember", mock.Anything, "g1", "eve").Return(false, nil)

	w := performJSON(t, f.router, http.MethodGet, "/groups/g1/messages", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListGroupsSearchUsesQuery(t *testing.T) {
	f := newGroupFixture("alice")
	f.groups.On("SearchGroups", mock.Anything, "algo").Return([]models.Group{{ID: "g1", Name: "Algorithms"}}, nil)

	w := performJSON(t, f.router, http.MethodGet, "/groups?q=algo", nil)

	require.Equal(t, http.StatusOK, w.Code)
	f.groups.AssertNotCalled(t, "ListGroups", mock.Anything)
}

func TestAddFileRecordsManifestEntry(t *testing.T) {
	f := newGroupFixture("alice")

	file := models.GroupFile{ID: "f1", GroupID: "g1", Name: "notes.pdf", StoragePath: "uploads/notes.pdf", UploaderID: "alice"}
	f.groups.On("IsMember", mock.Anything, "g1", "alice").Return(true, nil)
	f.groupFiles.On("AddFile", mock.Anything, "g1", "alice", "notes.pdf", "uploads/notes.pdf").Return(file, nil)

	w := performJSON(t, f.router, http.MethodPost, "/groups/g1/files", gin.H{"name": "notes.pdf", "storage_path": "uploads/notes.pdf"})

	assert.Equal(t, http.StatusCreated, w.Code)
	f.groupFiles.AssertExpectations(t)
}
