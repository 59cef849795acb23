package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"social-chat-backend/internal/models"
)

// FriendRequestRepository handles database operations for friend requests
type FriendRequestRepository struct {
	db DB
}

// NewFriendRequestRepository creates a new friend request repository
func NewFriendRequestRepository(db DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

// Create creates a new friend request
func (r *FriendRequestRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, sender_id, receiver_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, req.ID, req.SenderID, req.ReceiverID, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// GetByID retrieves a friend request by ID
func (r *FriendRequestRepository) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests
		WHERE id = $1
	`
	var req models.FriendRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}
	return &req, nil
}

// PairExists checks whether any request for the exact ordered
// (sender, receiver) pair exists, regardless of status.
func (r *FriendRequestRepository) PairExists(ctx context.Context, senderID, receiverID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friend_requests WHERE sender_id = $1 AND receiver_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, senderID, receiverID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friend request existence: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets the status of a friend request
func (r *FriendRequestRepository) UpdateStatus(ctx context.Context, id string, status models.FriendRequestStatus) error {
	query := `UPDATE friend_requests SET status = $1 WHERE id = $2`
	affected, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update friend request status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByReceiver returns requests where userID is the receiver, with both
// profiles resolved. Status filtering is an explicit optional parameter:
// an empty status means no filter.
func (r *FriendRequestRepository) ListByReceiver(ctx context.Context, userID string, status models.FriendRequestStatus) ([]models.FriendRequestView, error) {
	query := `
		SELECT fr.id, fr.sender_id, fr.receiver_id, fr.status, fr.created_at,
		       s.id, s.name, s.email, s.profile_pic_url,
		       rcv.id, rcv.name, rcv.email, rcv.profile_pic_url
		FROM friend_requests fr
		JOIN users s ON s.id = fr.sender_id
		JOIN users rcv ON rcv.id = fr.receiver_id
		WHERE fr.receiver_id = $1
		  AND ($2 = '' OR fr.status = $2)
		ORDER BY fr.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	defer rows.Close()

	requests := []models.FriendRequestView{}
	for rows.Next() {
		var v models.FriendRequestView
		err := rows.Scan(
			&v.ID, &v.SenderID, &v.ReceiverID, &v.Status, &v.CreatedAt,
			&v.Sender.ID, &v.Sender.Name, &v.Sender.Email, &v.Sender.ProfilePicURL,
			&v.Receiver.ID, &v.Receiver.Name, &v.Receiver.Email, &v.Receiver.ProfilePicURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend request: %w", err)
		}
		requests = append(requests, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friend requests: %w", err)
	}
	return requests, nil
}
