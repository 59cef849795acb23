package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/realtime"
	"social-chat-backend/internal/services"
)

// FriendHandler handles social-graph HTTP requests
type FriendHandler struct {
	social      *services.SocialService
	coordinator *realtime.Coordinator
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(social *services.SocialService, coordinator *realtime.Coordinator) *FriendHandler {
	return &FriendHandler{social: social, coordinator: coordinator}
}

// GetFriends handles GET /api/v1/friends?userId=
func (h *FriendHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, "userId is required", http.StatusBadRequest)
		return
	}

	list, err := h.social.ListFriends(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// SendRequestBody is the request body for sending a friend request
type SendRequestBody struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

// SendRequest handles POST /api/v1/friends/request
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var body SendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req, err := h.social.SendFriendRequest(r.Context(), body.SenderID, body.ReceiverID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("sender_id", req.SenderID).
		Str("receiver_id", req.ReceiverID).
		Str("request_id", req.ID).
		Msg("Friend request sent")

	h.coordinator.FriendRequestSent(req)

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Friend request sent successfully",
		"request": req,
	})
}

// AcceptRequestBody is the request body for accepting a friend request
type AcceptRequestBody struct {
	RequestID string `json:"requestId"`
}

// AcceptRequest handles POST /api/v1/friends/accept
func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	var body AcceptRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.RequestID == "" {
		respondError(w, "requestId is required", http.StatusBadRequest)
		return
	}

	req, err := h.social.AcceptFriendRequest(r.Context(), body.RequestID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("request_id", req.ID).Msg("Friend request accepted")

	h.coordinator.FriendRequestAccepted(req)

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Friend request accepted",
		"request": req,
	})
}

// UnfriendBody is the request body for unfriending
type UnfriendBody struct {
	UserID   string `json:"userId"`
	FriendID string `json:"friendId"`
}

// Unfriend handles POST /api/v1/friends/unfriend
func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	var body UnfriendBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.social.Unfriend(r.Context(), body.UserID, body.FriendID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Successfully unfriended"})
}

// Discover handles GET /api/v1/users/discover?userId=
func (h *FriendHandler) Discover(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	users, err := h.social.ListDiscoverableUsers(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ListRequests handles GET /api/v1/friend-requests/{userId}?status=
func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	status := r.URL.Query().Get("status")

	requests, err := h.social.ListIncomingRequests(r.Context(), userID, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": requests})
}
