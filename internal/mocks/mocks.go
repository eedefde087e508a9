package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-connect/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) ListOtherUsers(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, excludeID)
	var out []models.UserSummary
	if val := args.Get(0); val != nil {
		out = val.([]models.UserSummary)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Append(ctx context.Context, conversationID, senderID, text string) (models.Message, error) {
	args := m.Called(ctx, conversationID, senderID, text)
	var out models.Message
	if val := args.Get(0); val != nil {
		out = val.(models.Message)
	}
	return out, args.Error(1)
}

func (m *MessageRepositoryMock) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	args := m.Called(ctx, conversationID)
	var out []models.Message
	if val := args.Get(0); val != nil {
		out = val.([]models.Message)
	}
	return out, args.Error(1)
}

type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	args := m.Called(ctx, group)
	var out models.Group
	if val := args.Get(0); val != nil {
		out = val.(models.Group)
	}
	return out, args.Error(1)
}

func (m *GroupRepositoryMock) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	args := m.Called(ctx, groupID)
	var out models.Group
	if val := args.Get(0); val != nil {
		out = val.(models.Group)
	}
	return out, args.Error(1)
}

func (m *GroupRepositoryMock) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	var out []models.Group
	if val := args.Get(0); val != nil {
		out = val.([]models.Group)
	}
	return out, args.Error(1)
}

func (m *GroupRepositoryMock) SearchGroups(ctx context.Context, query string) ([]models.Group, error) {
	args := m.Called(ctx, query)
	var out []models.Group
	if val := args.Get(0); val != nil {
		out = val.([]models.Group)
	}
	return out, args.Error(1)
}

func (m *GroupRepositoryMock) ListMembers(ctx context.Context, groupID string) ([]string, error) {
	args := m.Called(ctx, groupID)
	var out []string
	if val := args.Get(0); val != nil {
		out = val.([]string)
	}
	return out, args.Error(1)
}

func (m *GroupRepositoryMock) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *GroupRepositoryMock) ToggleJoin(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *GroupRepositoryMock) AddMember(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

type GroupMessageRepositoryMock struct {
	mock.Mock
}

func (m *GroupMessageRepositoryMock) CreateGroupMessage(ctx context.Context, groupID, senderID, text string) (models.GroupMessage, error) {
	args := m.Called(ctx, groupID, senderID, text)
	var out models.GroupMessage
	if val := args.Get(0); val != nil {
		out = val.(models.GroupMessage)
	}
	return out, args.Error(1)
}

func (m *GroupMessageRepositoryMock) ListGroupMessages(ctx context.Context, groupID string) ([]models.GroupMessage, error) {
	args := m.Called(ctx, groupID)
	var out []models.GroupMessage
	if val := args.Get(0); val != nil {
		out = val.([]models.GroupMessage)
	}
	return out, args.Error(1)
}

func (m *GroupMessageRepositoryMock) GetGroupMessage(ctx context.Context, messageID string) (models.GroupMessage, error) {
	args := m.Called(ctx, messageID)
	var out models.GroupMessage
	if val := args.Get(0); val != nil {
		out = val.(models.GroupMessage)
	}
	return out, args.Error(1)
}

type GroupFileRepositoryMock struct {
	mock.Mock
}

func (m *GroupFileRepositoryMock) AddFile(ctx context.Context, groupID, uploaderID, name, storagePath string) (models.GroupFile, error) {
	args := m.Called(ctx, groupID, uploaderID, name, storagePath)
	var out models.GroupFile
	if val := args.Get(0); val != nil {
		out = val.(models.GroupFile)
	}
	return out, args.Error(1)
}

func (m *GroupFileRepositoryMock) ListFiles(ctx context.Context, groupID string) ([]models.GroupFile, error) {
	args := m.Called(ctx, groupID)
	var out []models.GroupFile
	if val := args.Get(0); val != nil {
		out = val.([]models.GroupFile)
	}
	return out, args.Error(1)
}

type EventRepositoryMock struct {
	mock.Mock
}

func (m *EventRepositoryMock) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	args := m.Called(ctx, event)
	var out models.Event
	if val := args.Get(0); val != nil {
		out = val.(models.Event)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	var out []models.Event
	if val := args.Get(0); val != nil {
		out = val.([]models.Event)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	args := m.Called(ctx, eventID)
	var out models.Event
	if val := args.Get(0); val != nil {
		out = val.(models.Event)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	args := m.Called(ctx, event)
	var out models.Event
	if val := args.Get(0); val != nil {
		out = val.(models.Event)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *EventRepositoryMock) JoinEvent(ctx context.Context, eventID, userID string) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *EventRepositoryMock) Participants(ctx context.Context, eventID string) ([]string, error) {
	args := m.Called(ctx, eventID)
	var out []string
	if val := args.Get(0); val != nil {
		out = val.([]string)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) AddTask(ctx context.Context, eventID, title, assignedTo string) (models.Task, error) {
	args := m.Called(ctx, eventID, title, assignedTo)
	var out models.Task
	if val := args.Get(0); val != nil {
		out = val.(models.Task)
	}
	return out, args.Error(1)
}

func (m *EventRepositoryMock) UpdateTaskStatus(ctx context.Context, eventID, taskID, status string) (models.Task, error) {
	args := m.Called(ctx, eventID, taskID, status)
	var out models.Task
	if val := args.Get(0); val != nil {
		out = val.(models.Task)
	}
	return out, args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) CreateBatch(ctx context.Context, batch []models.Notification) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListForRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	var out []models.Notification
	if val := args.Get(0); val != nil {
		out = val.([]models.Notification)
	}
	return out, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

type PostRepositoryMock struct {
	mock.Mock
}

func (m *PostRepositoryMock) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	args := m.Called(ctx, post)
	var out models.Post
	if val := args.Get(0); val != nil {
		out = val.(models.Post)
	}
	return out, args.Error(1)
}

func (m *PostRepositoryMock) ListPosts(ctx context.Context, newestFirst bool) ([]models.Post, error) {
	args := m.Called(ctx, newestFirst)
	var out []models.Post
	if val := args.Get(0); val != nil {
		out = val.([]models.Post)
	}
	return out, args.Error(1)
}

func (m *PostRepositoryMock) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

type MaterialRepositoryMock struct {
	mock.Mock
}

func (m *MaterialRepositoryMock) CreateMaterial(ctx context.Context, material models.Material) (models.Material, error) {
	args := m.Called(ctx, material)
	var out models.Material
	if val := args.Get(0); val != nil {
		out = val.(models.Material)
	}
	return out, args.Error(1)
}

func (m *MaterialRepositoryMock) ListMaterials(ctx context.Context) ([]models.Material, error) {
	args := m.Called(ctx)
	var out []models.Material
	if val := args.Get(0); val != nil {
		out = val.([]models.Material)
	}
	return out, args.Error(1)
}

func (m *MaterialRepositoryMock) SearchMaterials(ctx context.Context, query string) ([]models.Material, error) {
	args := m.Called(ctx, query)
	var out []models.Material
	if val := args.Get(0); val != nil {
		out = val.([]models.Material)
	}
	return out, args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) NotifyAllExcept(ctx context.Context, actorID, notificationType, message, link string) ([]models.Notification, error) {
	args := m.Called(ctx, actorID, notificationType, message, link)
	var out []models.Notification
	if val := args.Get(0); val != nil {
		out = val.([]models.Notification)
	}
	return out, args.Error(1)
}

func (m *NotifierMock) NotifyUsers(ctx context.Context, actorID string, recipients []string, notificationType, message, link string) ([]models.Notification, error) {
	args := m.Called(ctx, actorID, recipients, notificationType, message, link)
	var out []models.Notification
	if val := args.Get(0); val != nil {
		out = val.([]models.Notification)
	}
	return out, args.Error(1)
}
