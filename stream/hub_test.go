package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/snakevo/components"
	"github.com/pthm-cable/snakevo/snake"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub := NewHub(600, 600, 20, nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dial(t, srv)
	defer conn.Close()

	var hello Hello
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("reading hello: %v", err)
	}
	if hello.Type != TypeHello || hello.Width != 600 || hello.Cell != 20 {
		t.Errorf("hello = %+v", hello)
	}

	sent := Frame{
		Generation: 3,
		Tick:       17,
		Alive:      2,
		Agents: []snake.AgentView{
			{Head: components.Position{X: 40, Y: 60}, Score: 12},
		},
	}
	if !hub.Publish(sent) {
		t.Fatal("Publish dropped the first frame")
	}

	var got Frame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	if got.Type != TypeFrame {
		t.Errorf("Type = %q, want %q", got.Type, TypeFrame)
	}
	if got.Generation != 3 || got.Tick != 17 || got.Alive != 2 {
		t.Errorf("frame = %+v", got)
	}
	if len(got.Agents) != 1 || got.Agents[0].Head != (components.Position{X: 40, Y: 60}) || got.Agents[0].Score != 12 {
		t.Errorf("agents = %+v", got.Agents)
	}
	if n := hub.Clients(); n != 1 {
		t.Errorf("Clients() = %d, want 1", n)
	}
}

func TestHubRunDisconnectsOnCancel(t *testing.T) {
	hub := NewHub(600, 600, 20, nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	conn := dial(t, srv)
	defer conn.Close()
	var hello Hello
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("reading hello: %v", err)
	}

	cancel()
	<-done

	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after Run returned")
	}
	if n := hub.Clients(); n != 0 {
		t.Errorf("Clients() = %d after cancel, want 0", n)
	}
}

func TestPublishDropsWhenBehind(t *testing.T) {
	hub := NewHub(600, 600, 20, nil)
	for i := 0; i < frameBuffer; i++ {
		if !hub.Publish(Frame{Tick: i}) {
			t.Fatalf("frame %d dropped with room in the buffer", i)
		}
	}
	if hub.Publish(Frame{}) {
		t.Error("Publish queued a frame past the buffer")
	}
}

func TestNilHub(t *testing.T) {
	var hub *Hub
	if hub.Publish(Frame{}) {
		t.Error("nil hub accepted a frame")
	}
	if hub.Clients() != 0 {
		t.Error("nil hub has clients")
	}
}
