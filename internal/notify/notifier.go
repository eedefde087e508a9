// Package notify builds and stores notification batches as a synchronous
// side effect of producer writes.
package notify

import (
	"context"
	"log"

	"github.com/google/uuid"

	"campus-connect/internal/models"
	"campus-connect/internal/observability"
	"campus-connect/internal/repositories"
)

// Pusher delivers a stored notification to a recipient's open sessions.
type Pusher interface {
	PushNotification(userID string, n models.Notification)
}

// Notifier fans notification records out to recipient sets. One record per
// recipient, inserted in a single batch; no retry, no deduplication across
// repeated producer actions.
type Notifier struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	pusher        Pusher
}

// New constructs a Notifier. pusher may be nil when no relay is attached.
func New(notifications repositories.NotificationRepository, users repositories.UserRepository, pusher Pusher) *Notifier {
	return &Notifier{notifications: notifications, users: users, pusher: pusher}
}

// NotifyAllExcept addresses every known user except the actor. Used for
// global announcements such as event creation.
func (n *Notifier) NotifyAllExcept(ctx context.Context, actorID, notificationType, message, link string) ([]models.Notification, error) {
	users, err := n.users.ListOtherUsers(ctx, actorID)
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, u.ID)
	}
	return n.NotifyUsers(ctx, actorID, recipients, notificationType, message, link)
}

// NotifyUsers addresses the given recipients, always excluding the actor and
// deduplicating the set.
func (n *Notifier) NotifyUsers(ctx context.Context, actorID string, recipients []string, notificationType, message, link string) ([]models.Notification, error) {
	seen := map[string]struct{}{actorID: {}, "": {}}
	batch := make([]models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		if _, ok := seen[recipient]; ok {
			continue
		}
		seen[recipient] = struct{}{}
		batch = append(batch, models.Notification{
			ID:          uuid.NewString(),
			RecipientID: recipient,
			SenderID:    actorID,
			Type:        notificationType,
			Message:     message,
			Link:        link,
		})
	}
	if len(batch) == 0 {
		return nil, nil
	}

	if err := n.notifications.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	observability.AddNotificationsCreated(notificationType, len(batch))
	if err := observability.PublishEvent(ctx, "notifications."+notificationType, observability.EventEnvelope{
		EventType: "notifications",
		EventName: notificationType,
		Payload: observability.NotificationEventPayload{
			Type:       notificationType,
			ActorID:    actorID,
			Recipients: len(batch),
			Link:       link,
		},
	}, nil); err != nil {
		log.Printf("notification event publish failed: %v", err)
	}

	if n.pusher != nil {
		for _, record := range batch {
			n.pusher.PushNotification(record.RecipientID, record)
		}
	}
	return batch, nil
}
