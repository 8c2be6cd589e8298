// Package stream pushes simulation frames to websocket spectators.
package stream

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/snakevo/snake"
)

// Message types.
const (
	TypeHello = "hello"
	TypeFrame = "frame"
)

// Hello is sent once to every client on connect.
type Hello struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cell   int    `json:"cell"`
}

// Frame is a snapshot of the population.
type Frame struct {
	Type       string            `json:"type"`
	Generation int               `json:"generation"`
	Tick       int               `json:"tick"`
	Alive      int               `json:"alive"`
	HighScore  int               `json:"high_score"`
	Agents     []snake.AgentView `json:"agents"`
}

// frameBuffer is how many frames may wait for the broadcaster before
// Publish starts dropping them.
const frameBuffer = 4

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return c.conn.WriteJSON(v)
}

// Hub tracks connected spectators and fans frames out to them. Clients that
// fail a write, including by exceeding the write timeout, are dropped.
type Hub struct {
	upgrader     websocket.Upgrader
	hello        Hello
	frames       chan Frame
	writeTimeout time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates a hub that greets clients with the board geometry.
func NewHub(width, height, cell int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		hello:        Hello{Type: TypeHello, Width: width, Height: height, Cell: cell},
		frames:       make(chan Frame, frameBuffer),
		writeTimeout: time.Second,
		logger:       logger,
		clients:      make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away. Incoming messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	if err := c.send(h.hello, h.writeTimeout); err != nil {
		h.drop(c)
		return
	}
	h.logger.Debug("spectator connected", "remote", r.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

// Publish queues a frame for broadcast without blocking. It returns false
// when the frame was dropped because the broadcaster is behind.
func (h *Hub) Publish(f Frame) bool {
	if h == nil {
		return false
	}
	f.Type = TypeFrame
	select {
	case h.frames <- f:
		return true
	default:
		return false
	}
}

// Run broadcasts queued frames until ctx is done, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case f := <-h.frames:
			h.broadcast(f)
		}
	}
}

func (h *Hub) broadcast(v any) {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()

	for _, c := range list {
		if err := c.send(v, h.writeTimeout); err != nil {
			h.logger.Debug("dropping spectator", "error", err)
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()
	for _, c := range list {
		h.drop(c)
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
