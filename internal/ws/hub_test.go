package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"display-service/internal/display"
	"display-service/internal/domain"
)

func newTestServer(t *testing.T, hub *Hub, snap display.Snapshot) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := hub.Add(conn, snap)
		c.ReadLoop(time.Minute)
		hub.Remove(c)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%q) error: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) display.Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap display.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	return snap
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Count() = %d, want %d", hub.Count(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubPushesSnapshotOnConnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	snap := display.Snapshot{
		Visible: true,
		Receipt: &domain.Receipt{Name: "Alex", DrinkType: "latte", Size: "medium"},
		Seq:     7,
	}
	srv := newTestServer(t, hub, snap)

	conn := dial(t, srv)
	got := readSnapshot(t, conn)

	if !got.Visible {
		t.Fatal("snapshot not visible after connect")
	}
	if got.Seq != 7 {
		t.Fatalf("Seq = %d, want 7", got.Seq)
	}
	if got.Receipt == nil || got.Receipt.Name != "Alex" {
		t.Fatalf("Receipt = %+v, want name Alex", got.Receipt)
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newTestServer(t, hub, display.Snapshot{})

	first := dial(t, srv)
	second := dial(t, srv)
	readSnapshot(t, first)
	readSnapshot(t, second)
	waitForClients(t, hub, 2)

	hub.Broadcast(display.Snapshot{
		Visible: true,
		Receipt: &domain.Receipt{Name: "Budi", DrinkType: "mocha", Size: "large"},
		Seq:     3,
	})

	for _, conn := range []*websocket.Conn{first, second} {
		got := readSnapshot(t, conn)
		if got.Seq != 3 {
			t.Fatalf("Seq = %d, want 3", got.Seq)
		}
		if got.Receipt == nil || got.Receipt.Name != "Budi" {
			t.Fatalf("Receipt = %+v, want name Budi", got.Receipt)
		}
	}
}

func TestHubRemoveDropsClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newTestServer(t, hub, display.Snapshot{})

	conn := dial(t, srv)
	readSnapshot(t, conn)
	waitForClients(t, hub, 1)

	hub.CloseAll()
	waitForClients(t, hub, 0)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected read to fail after CloseAll")
	}
}
