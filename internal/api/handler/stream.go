package handler

import (
	"net/http"

	"github.com/fourstack/dropfour/internal/ids"
	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/notify"
	"github.com/fourstack/dropfour/internal/services/session"
)

// StreamHandler serves the event stream every client must hold open. The
// assigned connection id is the client's handle for all gameplay intents;
// the stream closing is the disconnect signal.
type StreamHandler struct {
	hub        *notify.Hub
	controller *session.Controller
}

// NewStreamHandler creates a stream handler
func NewStreamHandler(hub *notify.Hub, controller *session.Controller) *StreamHandler {
	return &StreamHandler{
		hub:        hub,
		controller: controller,
	}
}

// Stream handles GET /stream
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn := model.ConnectionID(ids.New())

	notify.ServeSSE(w, r, h.hub, conn)

	// The stream is gone; whatever this connection was doing is now a
	// disconnect
	h.controller.Disconnect(conn)
}
