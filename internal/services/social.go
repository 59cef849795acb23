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
	ErrMissingUserID    = errors.New("user id is required")
	ErrMissingFriendID  = errors.New("friend id is required")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyRequested = errors.New("friend request already sent")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrInvalidStatus    = errors.New("invalid status filter")
)

// SocialService owns the friend-request state machine and the friends
// adjacency.
type SocialService struct {
	requestRepo    *repository.FriendRequestRepository
	friendshipRepo *repository.FriendshipRepository
	userRepo       *repository.UserRepository
	notifications  *NotificationService
}

// NewSocialService creates a new social graph service
func NewSocialService(
	requestRepo *repository.FriendRequestRepository,
	friendshipRepo *repository.FriendshipRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
) *SocialService {
	return &SocialService{
		requestRepo:    requestRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		notifications:  notifications,
	}
}

// SendFriendRequest creates a pending request for the exact ordered
// (sender, receiver) pair. The existence pre-check is best-effort: two
// near-simultaneous calls can both pass it, and the duplicate is
// tolerated. The reverse pair is deliberately not checked, so mutual
// requests produce two independent pending rows.
func (s *SocialService) SendFriendRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	if senderID == "" || receiverID == "" {
		return nil, ErrMissingUserID
	}

	exists, err := s.requestRepo.PairExists(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRequested
	}

	req := &models.FriendRequest{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestPending,
		CreatedAt:  time.Now(),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	// Notification is best-effort; the request itself is authoritative.
	if err := s.notifications.Create(ctx, receiverID, models.NotificationFriendRequest, senderID, "You received a friend request."); err != nil {
		log.Error().Err(err).Str("receiver_id", receiverID).Msg("Failed to create friend request notification")
	}

	return req, nil
}

// AcceptFriendRequest marks the request accepted and adds each user to
// the other's friends set. The set-add is idempotent, so a redundant
// second accept leaves both friends sets unchanged.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, req.ID, models.FriendRequestAccepted); err != nil {
		return nil, err
	}
	req.Status = models.FriendRequestAccepted

	if err := s.friendshipRepo.Add(ctx, req.SenderID, req.ReceiverID); err != nil {
		return nil, err
	}

	if err := s.notifications.Create(ctx, req.SenderID, models.NotificationFriendRequest, req.ReceiverID, "Your friend request was accepted."); err != nil {
		log.Error().Err(err).Str("sender_id", req.SenderID).Msg("Failed to create acceptance notification")
	}

	return req, nil
}

// Unfriend removes the symmetric adjacency. The originating friend
// request is left untouched, so request history and live friendship can
// diverge. Unfriending non-friends succeeds as a no-op.
func (s *SocialService) Unfriend(ctx context.Context, userID, friendID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if friendID == "" {
		return ErrMissingFriendID
	}
	return s.friendshipRepo.Remove(ctx, userID, friendID)
}

// ListFriends returns the user's public profile plus resolved friend
// profiles.
func (s *SocialService) ListFriends(ctx context.Context, userID string) (*models.FriendList, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	friends, err := s.friendshipRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.FriendList{User: user.Profile(), Friends: friends}, nil
}

// ListDiscoverableUsers returns users the given user has never exchanged
// a friend request with, excluding the user itself.
func (s *SocialService) ListDiscoverableUsers(ctx context.Context, userID string) ([]models.Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.userRepo.ListDiscoverable(ctx, userID)
}

// ListIncomingRequests returns requests addressed to userID, optionally
// filtered by status. An empty status means no filter.
func (s *SocialService) ListIncomingRequests(ctx context.Context, userID, status string) ([]models.FriendRequestView, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if status != "" && !models.ValidFriendRequestStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.requestRepo.ListByReceiver(ctx, userID, models.FriendRequestStatus(status))
}
