package repository

import (
	"context"
	"fmt"

	"social-chat-backend/internal/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, sender_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.UserID, n.Type, n.SenderID, n.Message, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByUser returns all notifications for a user, newest first, with the
// sender profile resolved.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.NotificationView, error) {
	query := `
		SELECT n.id, n.user_id, n.type, n.sender_id, n.message, n.is_read, n.created_at,
		       s.id, s.name, s.email, s.profile_pic_url
		FROM notifications n
		JOIN users s ON s.id = n.sender_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.NotificationView{}
	for rows.Next() {
		var v models.NotificationView
		err := rows.Scan(
			&v.ID, &v.UserID, &v.Type, &v.SenderID, &v.Message, &v.IsRead, &v.CreatedAt,
			&v.Sender.ID, &v.Sender.Name, &v.Sender.Email, &v.Sender.ProfilePicURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead bulk-sets is_read for the given ids. Unknown ids are ignored.
func (r *NotificationRepository) MarkRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE notifications SET is_read = TRUE WHERE id = ANY($1)`
	_, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
