package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fourstack/dropfour/internal/api/apierr"
	"github.com/fourstack/dropfour/internal/api/request"
	"github.com/fourstack/dropfour/internal/api/response"
	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/services/session"
)

// QueueHandler handles matchmaking endpoints
type QueueHandler struct {
	controller *session.Controller
}

// NewQueueHandler creates a queue handler
func NewQueueHandler(controller *session.Controller) *QueueHandler {
	return &QueueHandler{controller: controller}
}

// Join handles POST /queue/join
func (h *QueueHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.DisplayName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("display_name is required"))
		return
	}

	result, err := h.controller.JoinQueue(r.Context(), model.ConnectionID(req.ConnectionID), req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	status := http.StatusAccepted
	if result.Session != nil {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.JoinQueue{
		ParticipantID: result.ParticipantID,
		Queued:        result.Queued,
		Session:       result.Session,
	})
}

// Leave handles POST /queue/leave
func (h *QueueHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req request.LeaveQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	if err := h.controller.LeaveQueue(r.Context(), model.ConnectionID(req.ConnectionID)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}
