package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// dialTestClient upgrades a loopback connection and returns both ends.
func dialTestClient(t *testing.T, hub *Hub, rooms []string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(NewClient(conn, rooms))
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesRoomMembers(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())

	student := dialTestClient(t, hub, []string{"student-room", "rina@example.com"})
	other := dialTestClient(t, hub, []string{"faculty-room"})

	waitForRoom(t, hub, "student-room", 1)

	hub.Broadcast("rina@example.com", []byte(`{"event":"notification"}`))

	student.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := student.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(payload) != `{"event":"notification"}` {
		t.Fatalf("payload = %s", payload)
	}

	// The other room must stay silent.
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatal("client outside the room received the broadcast")
	}
}

func TestUnregisterRemovesFromAllRooms(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())

	upgrader := websocket.Upgrader{}
	registered := make(chan *Client, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(conn, []string{"student-room", "rina@example.com"})
		hub.Register(client)
		registered <- client
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	client := <-registered
	waitForRoom(t, hub, "student-room", 1)

	hub.Unregister(client)
	hub.Unregister(client) // Safe to repeat.

	if n := hub.RoomSize("student-room"); n != 0 {
		t.Fatalf("student-room size = %d after unregister", n)
	}
	if n := hub.RoomSize("rina@example.com"); n != 0 {
		t.Fatalf("personal room size = %d after unregister", n)
	}
}

func TestBroadcastDuringDisconnectChurn(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())

	upgrader := websocket.Upgrader{}
	registered := make(chan *Client, 40)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(conn, []string{"student-room"})
		hub.Register(client)
		registered <- client
	}))
	defer srv.Close()

	// Peers that never read, so write pumps jam and send buffers fill.
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conns := make([]*websocket.Conn, 0, 40)
	clients := make([]*Client, 0, 40)
	for i := 0; i < 40; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		conns = append(conns, conn)
		clients = append(clients, <-registered)
	}
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()

	// Disconnect every client while the hub keeps fanning out. Any panic
	// here crashes the test binary, which is the failure mode guarded
	// against.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, c := range clients {
			hub.Unregister(c)
		}
	}()

	payload := []byte(`{"event":"notification"}`)
	for i := 0; i < 200; i++ {
		hub.Broadcast("student-room", payload)
	}
	wg.Wait()

	waitForRoom(t, hub, "student-room", 0)
}

func waitForRoom(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %s never reached size %d", room, want)
}
