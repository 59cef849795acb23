package models

import "time"

// FriendRequestStatus is the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// ValidFriendRequestStatus reports whether s is a known status value.
func ValidFriendRequestStatus(s string) bool {
	switch FriendRequestStatus(s) {
	case FriendRequestPending, FriendRequestAccepted:
		return true
	}
	return false
}

// NotificationType classifies a notification record.
type NotificationType string

const (
	NotificationMessage       NotificationType = "message"
	NotificationFriendRequest NotificationType = "friend_request"
)

// User represents a registered user
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	ProfilePicURL string    `json:"profile_pic_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Profile is the public projection of a user, embedded wherever
// sender/receiver fields are resolved for clients.
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		ProfilePicURL: u.ProfilePicURL,
	}
}

// FriendRequest is a directed edge proposal between two users.
type FriendRequest struct {
	ID         string              `json:"id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// FriendRequestView is a friend request with both profiles resolved.
type FriendRequestView struct {
	FriendRequest
	Sender   Profile `json:"sender"`
	Receiver Profile `json:"receiver"`
}

// Chat is a single directed message.
type Chat struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Message    string     `json:"message"`
	Seen       bool       `json:"seen"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ChatView is a chat message with both profiles resolved.
type ChatView struct {
	Chat
	Sender   Profile `json:"sender"`
	Receiver Profile `json:"receiver"`
}

// Notification is a one-way fan-out record for a recipient.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	SenderID  string           `json:"sender_id"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationView is a notification with the sender profile resolved.
type NotificationView struct {
	Notification
	Sender Profile `json:"sender"`
}

// FriendList is a user's public profile plus resolved friend profiles.
type FriendList struct {
	User    Profile   `json:"user"`
	Friends []Profile `json:"friends"`
}
