package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/middleware"
	"social-chat-backend/internal/realtime"
	"social-chat-backend/internal/services"
)

// ChatHandler handles messaging HTTP requests
type ChatHandler struct {
	messaging   *services.MessagingService
	coordinator *realtime.Coordinator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(messaging *services.MessagingService, coordinator *realtime.Coordinator) *ChatHandler {
	return &ChatHandler{messaging: messaging, coordinator: coordinator}
}

// GetConversation handles GET /api/v1/chat/{userId}?friendId=
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	friendID := r.URL.Query().Get("friendId")

	chats, err := h.messaging.ListConversation(r.Context(), userID, friendID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chats)
}

// SendMessageBody is the request body for sending a chat message
type SendMessageBody struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

// SendMessage handles POST /api/v1/chat/send
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body SendMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	chat, err := h.messaging.SendMessage(r.Context(), body.SenderID, body.ReceiverID, body.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("chat_id", chat.ID).
		Str("sender_id", chat.SenderID).
		Str("receiver_id", chat.ReceiverID).
		Msg("Message sent")

	h.coordinator.MessageSent(chat)

	respondJSON(w, http.StatusOK, chat)
}

// EditMessageBody is the request body for editing a chat message
type EditMessageBody struct {
	Message string `json:"message"`
}

// EditMessage handles PUT /api/v1/chat/{chatId}
func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	callerID := middleware.GetUserID(r.Context())

	var body EditMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	chat, err := h.messaging.EditMessage(r.Context(), callerID, chatID, body.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chat)
}

// DeleteMessage handles DELETE /api/v1/chat/{chatId}
func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	callerID := middleware.GetUserID(r.Context())

	if err := h.messaging.DeleteMessage(r.Context(), callerID, chatID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Chat message deleted successfully"})
}

// MarkSeenBody is the request body for marking a conversation seen
type MarkSeenBody struct {
	FriendID string `json:"friendId"`
}

// MarkSeen handles POST /api/v1/chat/seen/{userId}
func (h *ChatHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var body MarkSeenBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.messaging.MarkSeen(r.Context(), userID, body.FriendID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Messages marked as seen",
		"updated": updated,
	})
}
