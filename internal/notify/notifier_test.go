package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-connect/internal/mocks"
	"campus-connect/internal/models"
)

type pusherRecorder struct {
	mu     sync.Mutex
	pushed []models.Notification
}

func (p *pusherRecorder) PushNotification(userID string, n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, n)
}

func TestNotifyUsersExcludesActorAndDeduplicates(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	pusher := &pusherRecorder{}
	notifier := New(repo, nil, pusher)

	var captured []models.Notification
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []models.Notification) bool {
		captured = batch
		return true
	})).Return(nil)

	recipients := []string{"bob", "alice", "bob", "", "carol"}
	batch, err := notifier.NotifyUsers(context.Background(), "alice", recipients, models.NotificationGroupMessage, "new message", "/groups/g1")
	require.NoError(t, err)

	require.Len(t, batch, 2)
	ids := []string{batch[0].RecipientID, batch[1].RecipientID}
	assert.ElementsMatch(t, []string{"bob", "carol"}, ids)
	for _, n := range batch {
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, "alice", n.SenderID)
		assert.Equal(t, models.NotificationGroupMessage, n.Type)
		assert.Equal(t, "/groups/g1", n.Link)
	}

	assert.Equal(t, captured, batch)
	assert.Len(t, pusher.pushed, 2)
	repo.AssertExpectations(t)
}

func TestNotifyUsersEmptyAfterExclusionSkipsStore(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	notifier := New(repo, nil, nil)

	batch, err := notifier.NotifyUsers(context.Background(), "alice", []string{"alice", ""}, models.NotificationMessage, "m", "/l")
	require.NoError(t, err)
	assert.Nil(t, batch)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestNotifyUsersStoreFailurePropagatesAndSkipsPush(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	pusher := &pusherRecorder{}
	notifier := New(repo, nil, pusher)

	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(assert.AnError)

	batch, err := notifier.NotifyUsers(context.Background(), "alice", []string{"bob"}, models.NotificationMessage, "m", "/l")
	assert.Error(t, err)
	assert.Nil(t, batch)
	assert.Empty(t, pusher.pushed)
}

func TestNotifyAllExceptAddressesEveryOtherUser(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	notifier := New(repo, users, nil)

	users.On("ListOtherUsers", mock.Anything, "alice").Return([]models.UserSummary{
		{ID: "bob"}, {ID: "carol"}, {ID: "dave"},
	}, nil)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	batch, err := notifier.NotifyAllExcept(context.Background(), "alice", models.NotificationNewEvent, "New event", "/events/e1")
	require.NoError(t, err)

	require.Len(t, batch, 3)
	for _, n := range batch {
		assert.NotEqual(t, "alice", n.RecipientID)
	}
	users.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestNotifyAllExceptUserListFailure(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	notifier := New(repo, users, nil)

	users.On("ListOtherUsers", mock.Anything, "alice").Return(nil, assert.AnError)

	_, err := notifier.NotifyAllExcept(context.Background(), "alice", models.NotificationNewEvent, "New event", "/events/e1")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
