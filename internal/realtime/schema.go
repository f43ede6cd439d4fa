package realtime

import "github.com/nucampus/campus-backend/internal/model"

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventNotification Event = "notification"
	EventPong         Event = "pong"
)

// NotificationEvent is the payload pushed to every socket in the addressed
// room. It is also the wire format carried over the Redis notify channel, so
// any instance's hub can forward it untouched.
type NotificationEvent struct {
	Event        Event               `json:"event"`
	Notification *model.Notification `json:"notification"`
}

type PongEvent struct {
	Event Event `json:"event"`
}

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client→server message; the stream is otherwise
// server-push. Rooms are never taken from the client.
type RequestEnvelope struct {
	Action Action `json:"action"`
}
