package telemetry

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	return s
}

func TestHubStreamsSnapshots(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	want := Snapshot{Tick: 7, Level: "demo", Bodies: []Body{{Entity: "1v0", Kind: "player", X: 1.5, Grounded: true, State: "run"}}}
	if !hub.Publish(want) {
		t.Fatal("publish rejected on an idle hub")
	}

	got := readSnapshot(t, conn)
	if got.Tick != want.Tick || got.Level != want.Level || len(got.Bodies) != 1 {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if b := got.Bodies[0]; b.Kind != "player" || !b.Grounded || b.State != "run" || b.X != 1.5 {
		t.Fatalf("body = %+v", b)
	}
}

func TestHubSendsLatestSnapshotOnConnect(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	for tick := uint64(1); tick <= 2; tick++ {
		hub.Publish(Snapshot{Tick: tick})
		if s := readSnapshot(t, first); s.Tick != tick {
			t.Fatalf("got tick %d, want %d", s.Tick, tick)
		}
	}

	late := dial(t, url)
	if s := readSnapshot(t, late); s.Tick != 2 {
		t.Fatalf("late client got tick %d, want 2", s.Tick)
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	hub := NewHub()
	for i := 0; i < broadcastQueue; i++ {
		if !hub.Publish(Snapshot{Tick: uint64(i)}) {
			t.Fatalf("publish %d rejected before the queue filled", i)
		}
	}
	if hub.Publish(Snapshot{}) {
		t.Fatal("publish must not block or succeed on a full queue")
	}
}
