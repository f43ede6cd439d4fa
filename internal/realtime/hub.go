package realtime

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/metrics"
)

// Hub tracks which sockets are in which rooms and fans incoming events out
// to them. Rooms are role rooms ("student-room", "faculty-room",
// "admin-room") or a user's email. Delivery is best-effort: a slow client is
// dropped rather than buffered without bound, and there is no replay — the
// notifications table is the durable record.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewHub creates a Hub.
func NewHub(rdb *redis.Client, log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		rdb:   rdb,
		log:   log.With().Str("component", "realtime_hub").Logger(),
	}
}

// Run bridges the Redis notify channels into local rooms, so publishes from
// any process instance reach sockets connected to this one. Blocks until the
// context is canceled; call in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	pubsub := h.rdb.PSubscribe(ctx, config.CacheKey.NotifyPattern())
	defer pubsub.Close()

	h.log.Info().Msg("Hub subscribed to notify channels")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Hub stopping")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			room := config.CacheKey.RoomFromChannel(msg.Channel)
			h.Broadcast(room, []byte(msg.Payload))
		}
	}
}

// Broadcast delivers a payload to every socket currently in the room. A
// client whose send buffer is full is disconnected.
func (h *Hub) Broadcast(room string, payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.Send(payload) {
			h.log.Warn().Str("room", room).Msg("Dropping slow client")
			h.Unregister(c)
		}
	}
}

// RoomSize returns how many sockets are currently in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Register adds a connected socket to the given rooms and starts its write
// pump. The caller owns the read side.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	for _, room := range c.rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]struct{})
		}
		h.rooms[room][c] = struct{}{}
	}
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	go c.writePump()
}

// Unregister removes a socket from all its rooms and closes it. Safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	registered := false
	for _, room := range c.rooms {
		if _, ok := h.rooms[room][c]; ok {
			registered = true
			delete(h.rooms[room], c)
			if len(h.rooms[room]) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()

	if registered {
		metrics.WSConnections.Dec()
		c.close()
	}
}
