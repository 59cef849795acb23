package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// channel is one logical per-user delivery target. Fan-out on a channel
// is serialized by its own mutex so deliveries to different channels do
// not block each other.
type channel struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

// Hub is the connection registry of the realtime gateway: it maps
// channel ids (user ids) to the connections subscribed to them.
// Delivery is best-effort and at-most-once; events sent to a channel
// with no subscribers are dropped.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]*channel
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]*channel)}
}

// Join subscribes the client to the named channel. A client is joined to
// at most one channel: joining again moves the subscription.
func (h *Hub) Join(c *Client, channelID string) {
	h.Leave(c)

	// The insert happens under the registry lock so a concurrent Leave
	// cannot reap the channel between lookup and insert.
	h.mu.Lock()
	ch, ok := h.channels[channelID]
	if !ok {
		ch = &channel{clients: make(map[*Client]struct{})}
		h.channels[channelID] = ch
	}
	ch.mu.Lock()
	ch.clients[c] = struct{}{}
	ch.mu.Unlock()
	h.mu.Unlock()

	c.setJoined(channelID)

	log.Info().Str("user_id", c.userID).Str("channel", channelID).Msg("Client joined channel")
}

// Leave releases the client's channel membership, if any.
func (h *Hub) Leave(c *Client) {
	channelID := c.joinedChannel()
	if channelID == "" {
		return
	}

	h.mu.RLock()
	ch, ok := h.channels[channelID]
	h.mu.RUnlock()
	if !ok {
		c.setJoined("")
		return
	}

	ch.mu.Lock()
	delete(ch.clients, c)
	empty := len(ch.clients) == 0
	ch.mu.Unlock()

	if empty {
		h.mu.Lock()
		if cur, ok := h.channels[channelID]; ok {
			cur.mu.Lock()
			if len(cur.clients) == 0 {
				delete(h.channels, channelID)
			}
			cur.mu.Unlock()
		}
		h.mu.Unlock()
	}

	c.setJoined("")
}

// Broadcast delivers the event to every subscriber of the channel and
// returns the number of connections it was queued for. A subscriber
// whose outbound queue is full is disconnected rather than allowed to
// stall the channel.
func (h *Hub) Broadcast(channelID string, ev Event) int {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("Failed to marshal event")
		return 0
	}

	h.mu.RLock()
	ch, ok := h.channels[channelID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}

	var slow []*Client
	delivered := 0

	ch.mu.Lock()
	for c := range ch.clients {
		if c.trySend(data) {
			delivered++
		} else {
			slow = append(slow, c)
		}
	}
	ch.mu.Unlock()

	for _, c := range slow {
		log.Warn().Str("user_id", c.userID).Str("channel", channelID).Msg("Disconnecting slow subscriber")
		c.Close()
	}

	return delivered
}

// Subscribers returns the number of connections on a channel.
func (h *Hub) Subscribers(channelID string) int {
	h.mu.RLock()
	ch, ok := h.channels[channelID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.clients)
}
