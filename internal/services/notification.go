package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"social-chat-backend/internal/models"
	"social-chat-backend/internal/repository"
)

// NotificationService creates and queries notification records keyed by
// recipient. Creation is best-effort from the caller's perspective: the
// callers log failures instead of propagating them.
type NotificationService struct {
	notifRepo *repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// Create inserts a notification for a recipient.
func (s *NotificationService) Create(ctx context.Context, recipientID string, ntype models.NotificationType, senderID, text string) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    recipientID,
		Type:      ntype,
		SenderID:  senderID,
		Message:   text,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	return s.notifRepo.Create(ctx, n)
}

// List returns all notifications for a user, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.NotificationView, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.notifRepo.ListByUser(ctx, userID)
}

// MarkRead bulk-marks the given notifications as read. Ids that do not
// exist are silently ignored.
func (s *NotificationService) MarkRead(ctx context.Context, ids []string) error {
	return s.notifRepo.MarkRead(ctx, ids)
}
