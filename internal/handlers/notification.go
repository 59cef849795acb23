package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"social-chat-backend/internal/services"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/v1/notifications/{userId}
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	notifications, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// MarkReadBody is the request body for bulk-marking notifications read
type MarkReadBody struct {
	NotificationIDs []string `json:"notificationIds"`
}

// MarkRead handles POST /api/v1/notifications/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var body MarkReadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), body.NotificationIDs); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notifications marked as read"})
}
