package notify

import (
	"net/http"
	"time"

	"github.com/fourstack/dropfour/internal/model"
)

// pingPeriod is the time between keepalive comments
const pingPeriod = 30 * time.Second

// ServeSSE streams events for one connection until the client goes away.
// It returns once the stream closes; the caller decides what a closed
// stream means (for game connections: a disconnect intent).
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, conn model.ConnectionID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := hub.Register(conn, time.Now())
	defer hub.Unregister(client)

	// Tell the client which connection id it was assigned
	hub.Send(conn, EventConnected, ConnectedPayload{ConnectionID: conn})
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel (superseded registration)
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
