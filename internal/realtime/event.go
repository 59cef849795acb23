package realtime

import "encoding/json"

// Inbound and outbound event names on the websocket channel protocol.
const (
	EventJoin                = "join"
	EventSendMessage         = "sendMessage"
	EventSendFriendRequest   = "sendFriendRequest"
	EventAcceptFriendRequest = "acceptFriendRequest"
	EventError               = "error"
)

// Event is a single frame on a user channel.
type Event struct {
	Type       string `json:"type"`
	UserID     string `json:"userId,omitempty"`
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func marshalEvent(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}
