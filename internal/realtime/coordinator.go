package realtime

import (
	"github.com/rs/zerolog/log"

	"social-chat-backend/internal/models"
)

// Coordinator is the seam between durable mutations and realtime
// delivery. Callers invoke it only after the durable write has
// succeeded; delivery failures never roll the write back and are
// swallowed here.
type Coordinator struct {
	hub *Hub
}

// NewCoordinator creates a new event coordinator
func NewCoordinator(hub *Hub) *Coordinator {
	return &Coordinator{hub: hub}
}

// MessageSent fans the stored chat message out to the receiver's channel.
func (co *Coordinator) MessageSent(chat *models.Chat) {
	delivered := co.hub.Broadcast(chat.ReceiverID, Event{
		Type:       EventSendMessage,
		SenderID:   chat.SenderID,
		ReceiverID: chat.ReceiverID,
		Message:    chat.Message,
		Data:       chat,
	})
	log.Debug().
		Str("chat_id", chat.ID).
		Str("receiver_id", chat.ReceiverID).
		Int("delivered", delivered).
		Msg("Message event emitted")
}

// FriendRequestSent fans the stored request out to the receiver's channel.
func (co *Coordinator) FriendRequestSent(req *models.FriendRequest) {
	delivered := co.hub.Broadcast(req.ReceiverID, Event{
		Type:       EventSendFriendRequest,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		RequestID:  req.ID,
		Data:       req,
	})
	log.Debug().
		Str("request_id", req.ID).
		Str("receiver_id", req.ReceiverID).
		Int("delivered", delivered).
		Msg("Friend request event emitted")
}

// FriendRequestAccepted notifies the original sender's channel that the
// request was accepted.
func (co *Coordinator) FriendRequestAccepted(req *models.FriendRequest) {
	delivered := co.hub.Broadcast(req.SenderID, Event{
		Type:       EventAcceptFriendRequest,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		RequestID:  req.ID,
		Data:       req,
	})
	log.Debug().
		Str("request_id", req.ID).
		Str("sender_id", req.SenderID).
		Int("delivered", delivered).
		Msg("Friend request accepted event emitted")
}
