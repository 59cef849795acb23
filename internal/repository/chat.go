package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"social-chat-backend/internal/models"
)

// ChatRepository handles database operations for chat messages
type ChatRepository struct {
	db DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create creates a new chat message
func (r *ChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	query := `
		INSERT INTO chats (id, sender_id, receiver_id, message, seen, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		chat.ID, chat.SenderID, chat.ReceiverID, chat.Message, chat.Seen, chat.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

// GetByID retrieves a chat message by ID
func (r *ChatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	query := `
		SELECT id, sender_id, receiver_id, message, seen, edited_at, created_at
		FROM chats
		WHERE id = $1
	`
	var chat models.Chat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&chat.ID, &chat.SenderID, &chat.ReceiverID, &chat.Message,
		&chat.Seen, &chat.EditedAt, &chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

// ListBetween returns every chat between the unordered pair of users in
// creation order, with both profiles resolved.
func (r *ChatRepository) ListBetween(ctx context.Context, userID, friendID string) ([]models.ChatView, error) {
	query := `
		SELECT c.id, c.sender_id, c.receiver_id, c.message, c.seen, c.edited_at, c.created_at,
		       s.id, s.name, s.email, s.profile_pic_url,
		       rcv.id, rcv.name, rcv.email, rcv.profile_pic_url
		FROM chats c
		JOIN users s ON s.id = c.sender_id
		JOIN users rcv ON rcv.id = c.receiver_id
		WHERE (c.sender_id = $1 AND c.receiver_id = $2)
		   OR (c.sender_id = $2 AND c.receiver_id = $1)
		ORDER BY c.created_at
	`
	rows, err := r.db.Query(ctx, query, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	chats := []models.ChatView{}
	for rows.Next() {
		var v models.ChatView
		err := rows.Scan(
			&v.ID, &v.SenderID, &v.ReceiverID, &v.Message, &v.Seen, &v.EditedAt, &v.CreatedAt,
			&v.Sender.ID, &v.Sender.Name, &v.Sender.Email, &v.Sender.ProfilePicURL,
			&v.Receiver.ID, &v.Receiver.Name, &v.Receiver.Email, &v.Receiver.ProfilePicURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chats: %w", err)
	}
	return chats, nil
}

// UpdateMessage overwrites the text of a chat and records the edit time.
func (r *ChatRepository) UpdateMessage(ctx context.Context, id, message string, editedAt time.Time) error {
	query := `UPDATE chats SET message = $1, edited_at = $2 WHERE id = $3`
	affected, err := r.db.Exec(ctx, query, message, editedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes a chat message
func (r *ChatRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM chats WHERE id = $1`
	affected, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSeen bulk-marks every unseen message from friendID to userID as
// seen and returns the number of rows updated. Repeated calls are no-ops.
func (r *ChatRepository) MarkSeen(ctx context.Context, userID, friendID string) (int64, error) {
	query := `
		UPDATE chats SET seen = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND seen = FALSE
	`
	affected, err := r.db.Exec(ctx, query, friendID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark chats as seen: %w", err)
	}
	return affected, nil
}
