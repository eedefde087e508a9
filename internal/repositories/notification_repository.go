package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"campus-connect/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository stores per-recipient event records.
type NotificationRepository interface {
	CreateBatch(ctx context.Context, batch []models.Notification) error
	ListForRecipient(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// NotificationRepo is a sqlx implementation of NotificationRepository.
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// CreateBatch inserts all records in a single transaction. There is no retry
// and no deduplication across rapid repeated producer actions.
func (r *NotificationRepo) CreateBatch(ctx context.Context, batch []models.Notification) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, n := range batch {
		if _, err = tx.ExecContext(ctx, `INSERT INTO notifications (id, recipient_id, sender_id, type, message, link) VALUES ($1, $2, $3, $4, $5, $6)`,
			n.ID, n.RecipientID, n.SenderID, n.Type, n.Message, n.Link); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListForRecipient returns the recipient's notifications newest first, with
// sender identity resolved.
func (r *NotificationRepo) ListForRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications, `SELECT n.id, n.recipient_id, n.sender_id, COALESCE(u.username, '') AS sender_username,
            n.type, n.message, n.link, n.is_read, n.created_at
        FROM notifications n LEFT JOIN users u ON u.id = n.sender_id
        WHERE n.recipient_id=$1 ORDER BY n.created_at DESC`, userID)
	return notifications, err
}

// MarkRead flips the read flag, the only permitted mutation.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id=$1`, notificationID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
