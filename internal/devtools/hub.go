package devtools

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// DefaultEventBuffer is how many recent events a Hub keeps for late joiners.
const DefaultEventBuffer = 256

const writeWait = 5 * time.Second

// EventMessage is the JSON form of a reactive.Event.
type EventMessage struct {
	Kind       string    `json:"kind"`
	Node       string    `json:"node,omitempty"`
	Scope      uint64    `json:"scope,omitempty"`
	Label      string    `json:"label,omitempty"`
	Passes     int       `json:"passes,omitempty"`
	Effects    int       `json:"effects,omitempty"`
	Generation uint64    `json:"generation,omitempty"`
	DurationMS float64   `json:"duration_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
	Time       time.Time `json:"time"`
}

// NewEventMessage converts e to its wire form.
func NewEventMessage(e reactive.Event) EventMessage {
	m := EventMessage{
		Kind:       e.Kind.String(),
		Scope:      e.Scope,
		Label:      e.Label,
		Passes:     e.Passes,
		Effects:    e.Effects,
		Generation: e.Generation,
		DurationMS: float64(e.Duration()) / float64(time.Millisecond),
		Time:       e.End,
	}
	if !e.Node.IsZero() {
		m.Node = e.Node.String()
	}
	if e.Err != nil {
		m.Error = e.Err.Error()
	}
	if m.Time.IsZero() {
		m.Time = time.Now()
	}
	return m
}

// Hub fans runtime events out to websocket clients.
//
// Observe never blocks the runtime goroutine: events go through a buffered
// channel and are dropped when it is full. All socket writes happen on the
// goroutine running Run.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	recent []EventMessage
	size   int

	events     chan EventMessage
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once

	dropped atomic.Uint64
}

// NewHub creates a hub that remembers the last buffer events. A buffer
// below 1 uses DefaultEventBuffer.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = DefaultEventBuffer
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tool
			},
		},
		size:       buffer,
		events:     make(chan EventMessage, buffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Observe implements reactive.Observer.
func (h *Hub) Observe(e reactive.Event) {
	select {
	case h.events <- NewEventMessage(e):
	default:
		h.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the hub was behind.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Run delivers events to clients until ctx is done, then closes every
// connection.
func (h *Hub) Run(ctx context.Context) {
	defer h.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case conn := <-h.register:
			h.join(conn)
		case conn := <-h.unregister:
			h.drop(conn)
		case m := <-h.events:
			h.remember(m)
			h.broadcast(m)
		}
	}
}

// HandleWebSocket upgrades the request and streams events until the client
// goes away. New clients first receive the recent backlog.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Recent returns a copy of the buffered events, oldest first.
func (h *Hub) Recent() []EventMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]EventMessage, len(h.recent))
	copy(out, h.recent)
	return out
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections. It is safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

func (h *Hub) join(conn *websocket.Conn) {
	for _, m := range h.Recent() {
		if err := write(conn, m); err != nil {
			conn.Close()
			return
		}
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *Hub) remember(m EventMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.recent) == h.size {
		copy(h.recent, h.recent[1:])
		h.recent = h.recent[:h.size-1]
	}
	h.recent = append(h.recent, m)
}

// broadcast sends a message to all connected clients.
func (h *Hub) broadcast(m EventMessage) {
	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := write(client, m); err != nil {
			h.drop(client)
		}
	}
}

func write(conn *websocket.Conn, m EventMessage) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
