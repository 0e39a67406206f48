package notify

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/fourstack/dropfour/internal/model"
)

// sendBufferSize is the per-client buffer for outgoing messages
const sendBufferSize = 256

// Sender delivers a named event to one client connection. The session
// controller only depends on this interface.
type Sender interface {
	Send(conn model.ConnectionID, event string, payload any)
}

// Client represents one connected event stream
type Client struct {
	conn        model.ConnectionID
	send        chan []byte
	connectedAt time.Time
}

// Hub tracks connected clients keyed by connection id and pushes
// server-sent events to them. Slow clients have messages dropped rather
// than blocking gameplay.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.ConnectionID]*Client
	logger  *slog.Logger
}

var _ Sender = (*Hub)(nil)

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.ConnectionID]*Client),
		logger:  logger.With(slog.String("component", "notify")),
	}
}

// Register adds a client for the given connection id. Registering the same
// id again closes the previous stream.
func (h *Hub) Register(conn model.ConnectionID, now time.Time) *Client {
	client := &Client{
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: now,
	}

	h.mu.Lock()
	if prev, ok := h.clients[conn]; ok {
		close(prev.send)
	}
	h.clients[conn] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered",
		slog.String("connection_id", string(conn)),
		slog.Int("total_clients", total))
	return client
}

// Unregister removes the client if it is still the one bound to conn
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.conn]
	if ok && current == client {
		delete(h.clients, client.conn)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok && current == client {
		h.logger.Info("client unregistered",
			slog.String("connection_id", string(client.conn)),
			slog.Duration("connection_duration", time.Since(client.connectedAt)),
			slog.Int("total_clients", total))
	}
}

// Send pushes a named event with a JSON payload to one connection. Unknown
// connections and full buffers are logged and dropped; delivery is
// best-effort by design.
func (h *Hub) Send(conn model.ConnectionID, event string, payload any) {
	if conn == "" {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal event payload",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	h.mu.RLock()
	client, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- formatSSEMessage(event, data):
	default:
		h.logger.Warn("event dropped - client buffer full",
			slog.String("connection_id", string(conn)),
			slog.String("event", event))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats a server-sent event frame. Payloads are single
// JSON lines, so no multi-line data handling is needed.
func formatSSEMessage(event string, data []byte) []byte {
	msg := make([]byte, 0, len(event)+len(data)+16)
	msg = append(msg, "event: "...)
	msg = append(msg, event...)
	msg = append(msg, "\ndata: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg
}
