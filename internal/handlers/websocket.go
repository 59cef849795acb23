package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/realtime"
	"social-chat-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler terminates websocket connections and dispatches
// inbound channel events to the managers.
type WebSocketHandler struct {
	hub         *realtime.Hub
	coordinator *realtime.Coordinator
	users       *services.UserService
	social      *services.SocialService
	messaging   *services.MessagingService
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(
	hub *realtime.Hub,
	coordinator *realtime.Coordinator,
	users *services.UserService,
	social *services.SocialService,
	messaging *services.MessagingService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		coordinator: coordinator,
		users:       users,
		social:      social,
		messaging:   messaging,
	}
}

// HandleWebSocket handles GET /ws?token=
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.users.ValidateToken(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := h.hub.NewClient(userID, conn)
	go client.WritePump()
	defer client.Close()

	log.Info().Str("user_id", userID).Msg("Websocket connection established")

	// Durable writes triggered by channel events must run to completion
	// even if the client disconnects mid-request.
	ctx := context.WithoutCancel(r.Context())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("Websocket error")
			}
			break
		}

		var ev realtime.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse websocket event")
			client.Send(realtime.Event{Type: realtime.EventError, Message: "Invalid event format"})
			continue
		}

		if err := h.handleEvent(ctx, client, ev); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", ev.Type).Msg("Failed to handle event")
			client.Send(realtime.Event{Type: realtime.EventError, Message: err.Error()})
		}
	}
}

// handleEvent dispatches a single inbound event. Every mutation goes
// through the owning manager before anything is relayed, so the realtime
// path carries the same durability guarantee as the HTTP path.
func (h *WebSocketHandler) handleEvent(ctx context.Context, client *realtime.Client, ev realtime.Event) error {
	switch ev.Type {
	case realtime.EventJoin:
		return h.handleJoin(client, ev)
	case realtime.EventSendMessage:
		return h.handleSendMessage(ctx, client, ev)
	case realtime.EventSendFriendRequest:
		return h.handleSendFriendRequest(ctx, client, ev)
	case realtime.EventAcceptFriendRequest:
		return h.handleAcceptFriendRequest(ctx, ev)
	default:
		client.Send(realtime.Event{Type: realtime.EventError, Message: "Unknown event type"})
		return nil
	}
}

func (h *WebSocketHandler) handleJoin(client *realtime.Client, ev realtime.Event) error {
	// A connection may only subscribe to its own user's channel.
	if ev.UserID != "" && ev.UserID != client.UserID() {
		client.Send(realtime.Event{Type: realtime.EventError, Message: "Cannot join another user's channel"})
		return nil
	}
	h.hub.Join(client, client.UserID())
	return nil
}

func (h *WebSocketHandler) handleSendMessage(ctx context.Context, client *realtime.Client, ev realtime.Event) error {
	chat, err := h.messaging.SendMessage(ctx, client.UserID(), ev.ReceiverID, ev.Message)
	if err != nil {
		return err
	}
	h.coordinator.MessageSent(chat)
	return nil
}

func (h *WebSocketHandler) handleSendFriendRequest(ctx context.Context, client *realtime.Client, ev realtime.Event) error {
	req, err := h.social.SendFriendRequest(ctx, client.UserID(), ev.ReceiverID)
	if err != nil {
		return err
	}
	h.coordinator.FriendRequestSent(req)
	return nil
}

func (h *WebSocketHandler) handleAcceptFriendRequest(ctx context.Context, ev realtime.Event) error {
	req, err := h.social.AcceptFriendRequest(ctx, ev.RequestID)
	if err != nil {
		return err
	}
	h.coordinator.FriendRequestAccepted(req)
	return nil
}
