package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendQueueSize = 32
	writeTimeout  = 10 * time.Second
)

// Client is one websocket connection known to the hub. It starts in the
// connected state, becomes joined after an explicit join event binds it
// to a channel, and releases its membership on close.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	mu     sync.Mutex
	joined string

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection for the authenticated user.
func (h *Hub) NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		hub:    h,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}

// UserID returns the authenticated user behind the connection.
func (c *Client) UserID() string {
	return c.userID
}

// Channel returns the channel the client is joined to, or "".
func (c *Client) Channel() string {
	return c.joinedChannel()
}

func (c *Client) joinedChannel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.joined
}

func (c *Client) setJoined(channelID string) {
	c.mu.Lock()
	c.joined = channelID
	c.mu.Unlock()
}

// trySend queues data without blocking. A false return means the queue
// is full.
func (c *Client) trySend(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Send queues an event for this connection only.
func (c *Client) Send(ev Event) bool {
	data, err := marshalEvent(ev)
	if err != nil {
		return false
	}
	return c.trySend(data)
}

// WritePump drains the outbound queue onto the socket. It runs in its
// own goroutine for the life of the connection; a write error tears the
// connection down.
func (c *Client) WritePump() {
	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("user_id", c.userID).Msg("Websocket write failed")
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close releases channel membership and closes the socket. Safe to call
// more than once and from any goroutine.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.hub.Leave(c)
		c.conn.Close()
	})
}
