package live

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/store"
)

const (
	defaultSendBuffer = 16
	broadcastBuffer   = 16
)

// SnapshotReader exposes the latest live snapshot for clients that just connected.
type SnapshotReader interface {
	Live() (store.LiveSnapshot, bool)
}

// Hub tracks connected clients and fans snapshots out to them. All client bookkeeping and every
// send happens on the Run goroutine, so a Send channel is never written after it is closed.
type Hub struct {
	clients    map[*Client]struct{}
	mu         sync.RWMutex
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	runOnce    sync.Once

	latest     SnapshotReader
	sendBuffer int
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

// NewHub constructs a Hub. sendBuffer is the per-client queue length; non-positive uses the default.
func NewHub(latest SnapshotReader, sendBuffer int, logger *slog.Logger, recorder *metrics.Recorder) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latest:     latest,
		sendBuffer: sendBuffer,
		logger:     logger,
		metrics:    recorder,
		now:        time.Now,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then disconnects everyone.
// Only the first call runs the loop.
func (h *Hub) Run(ctx context.Context) {
	first := false
	h.runOnce.Do(func() { first = true })
	if !first {
		return
	}
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Serve wraps an upgraded connection in a client, registers it, and starts its pumps.
// The pumps stop when ctx is cancelled or the peer goes away.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) *Client {
	c := newClient(uuid.New().String(), conn, h, h.sendBuffer)
	h.Register(c)
	go c.WritePump(ctx)
	go c.ReadPump(ctx)
	return c
}

// Register adds a client. After the hub stops the client's Send is closed straight away.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

// Unregister removes a client; unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues a snapshot for every client. A full queue drops the message.
func (h *Hub) Publish(snap store.LiveSnapshot) {
	msg := NewMessage(MessageUpdate, snap, h.now())
	select {
	case h.broadcast <- msg:
	default:
		logging.Warn(h.logger, "live broadcast queue full, dropping update", logging.FieldCount, msg.Payload.Count)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.metrics.RecordWebsocketClients(1)
	logging.Info(h.logger, "websocket client connected", logging.FieldClientID, c.ID, logging.FieldCount, total)

	if h.latest == nil {
		return
	}
	if snap, ok := h.latest.Live(); ok {
		c.TrySend(NewMessage(MessageSnapshot, snap, h.now()))
	}
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.Send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	h.metrics.RecordWebsocketClients(-1)
	logging.Info(h.logger, "websocket client disconnected", logging.FieldClientID, c.ID, logging.FieldCount, total)
}

// broadcastMessage queues msg for every client and drops clients whose queue is full.
func (h *Hub) broadcastMessage(msg Message) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	logging.Debug(h.logger, "live snapshot broadcast", logging.FieldCount, len(clients))

	for _, c := range clients {
		if c.TrySend(msg) {
			continue
		}
		logging.Warn(h.logger, "websocket client too slow, disconnecting", logging.FieldClientID, c.ID)
		h.unregisterClient(c)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()

	if n > 0 {
		h.metrics.RecordWebsocketClients(-n)
	}
	logging.Info(h.logger, "live hub stopped", logging.FieldCount, n)
}

// NewUpgrader accepts same-origin requests, requests without an Origin header, and any origin
// in allowed. A "*" entry allows every origin.
func NewUpgrader(allowed []string) *websocket.Upgrader {
	set := make(map[string]struct{}, len(allowed))
	wildcard := false
	for _, origin := range allowed {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			wildcard = true
		}
		set[strings.ToLower(origin)] = struct{}{}
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if wildcard || origin == "" {
				return true
			}
			if _, ok := set[strings.ToLower(origin)]; ok {
				return true
			}
			return strings.EqualFold(strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"), r.Host)
		},
	}
}
