package repository

import (
	"context"
	"fmt"

	"social-chat-backend/internal/models"
)

// FriendshipRepository handles the symmetric friend edge rows.
type FriendshipRepository struct {
	db DB
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// Add inserts both directions of the friend edge in one statement.
// ON CONFLICT DO NOTHING makes the set-add idempotent under concurrent
// accepts on the same pair.
func (r *FriendshipRepository) Add(ctx context.Context, userID, friendID string) error {
	query := `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

// Remove deletes both directions of the friend edge. Removing a
// non-existent edge is a no-op.
func (r *FriendshipRepository) Remove(ctx context.Context, userID, friendID string) error {
	query := `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2)
		   OR (user_id = $2 AND friend_id = $1)
	`
	_, err := r.db.Exec(ctx, query, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

// ListFriends returns the resolved profiles of a user's friends.
func (r *FriendshipRepository) ListFriends(ctx context.Context, userID string) ([]models.Profile, error) {
	query := `
		SELECT u.id, u.name, u.email, u.profile_pic_url
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.name
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	friends := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.ProfilePicURL); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read friends: %w", err)
	}
	return friends, nil
}
