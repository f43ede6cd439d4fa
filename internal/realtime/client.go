package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeDeadline = 10 * time.Second
	pingInterval  = 30 * time.Second
	// sendBuffer bounds per-client backlog; beyond it the hub drops the client.
	sendBuffer = 16
)

// Client is one registered socket with its room memberships. The send
// channel is never closed: shutdown is signaled through done, so a broadcast
// racing a disconnect can never hit a closed channel.
type Client struct {
	conn      *websocket.Conn
	rooms     []string
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection. Rooms must come from validated
// claims, never from the client.
func NewClient(conn *websocket.Conn, rooms []string) *Client {
	return &Client{
		conn:  conn,
		rooms: rooms,
		send:  make(chan []byte, sendBuffer),
		done:  make(chan struct{}),
	}
}

// Rooms returns the rooms the client was registered with.
func (c *Client) Rooms() []string {
	return c.rooms
}

// Send queues a payload for the write pump, which is the only goroutine
// writing to the socket. Reports false when the client is closed or its
// buffer is full.
func (c *Client) Send(payload []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings. Exits when the client is closed.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
