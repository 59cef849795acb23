package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/models"
	"social-chat-backend/internal/repository"
)

var (
	ErrChatNotFound  = errors.New("chat message not found")
	ErrEmptyMessage  = errors.New("message text is required")
	ErrNotChatSender = errors.New("only the sender can modify this message")
)

// MessagingService owns the chat-message lifecycle.
type MessagingService struct {
	chatRepo      *repository.ChatRepository
	notifications *NotificationService
}

// NewMessagingService creates a new messaging service
func NewMessagingService(chatRepo *repository.ChatRepository, notifications *NotificationService) *MessagingService {
	return &MessagingService{
		chatRepo:      chatRepo,
		notifications: notifications,
	}
}

// SendMessage creates a chat record and a message notification for the
// receiver. The chat write is authoritative; a failed notification write
// leaves the operation successful.
func (s *MessagingService) SendMessage(ctx context.Context, senderID, receiverID, text string) (*models.Chat, error) {
	if senderID == "" || receiverID == "" {
		return nil, ErrMissingUserID
	}
	if text == "" {
		return nil, ErrEmptyMessage
	}

	chat := &models.Chat{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
		Seen:       false,
		CreatedAt:  time.Now(),
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	if err := s.notifications.Create(ctx, receiverID, models.NotificationMessage, senderID, "You received a new message."); err != nil {
		log.Error().Err(err).Str("receiver_id", receiverID).Msg("Failed to create message notification")
	}

	return chat, nil
}

// ListConversation returns all messages between the unordered pair
// {userID, friendID} in creation order.
func (s *MessagingService) ListConversation(ctx context.Context, userID, friendID string) ([]models.ChatView, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if friendID == "" {
		return nil, ErrMissingFriendID
	}
	return s.chatRepo.ListBetween(ctx, userID, friendID)
}

// EditMessage overwrites the text of a chat and stamps the edit time.
// Only the original sender may edit.
func (s *MessagingService) EditMessage(ctx context.Context, callerID, chatID, text string) (*models.Chat, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if chat.SenderID != callerID {
		return nil, ErrNotChatSender
	}

	now := time.Now()
	if err := s.chatRepo.UpdateMessage(ctx, chatID, text, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}

	chat.Message = text
	chat.EditedAt = &now
	return chat, nil
}

// DeleteMessage hard-deletes a chat. Only the original sender may delete.
func (s *MessagingService) DeleteMessage(ctx context.Context, callerID, chatID string) error {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	if chat.SenderID != callerID {
		return ErrNotChatSender
	}

	if err := s.chatRepo.Delete(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	return nil
}

// MarkSeen bulk-marks every unseen friendID→userID message as seen.
// Messages sent after the update snapshot stay unseen, which is correct.
func (s *MessagingService) MarkSeen(ctx context.Context, userID, friendID string) (int64, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}
	if friendID == "" {
		return 0, ErrMissingFriendID
	}
	return s.chatRepo.MarkSeen(ctx, userID, friendID)
}
