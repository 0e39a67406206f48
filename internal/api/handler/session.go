package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fourstack/dropfour/internal/api/apierr"
	"github.com/fourstack/dropfour/internal/api/request"
	"github.com/fourstack/dropfour/internal/api/response"
	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/services/session"
	"github.com/fourstack/dropfour/internal/storage"
)

// SessionHandler handles gameplay endpoints
type SessionHandler struct {
	controller *session.Controller
	archive    storage.Archive
}

// NewSessionHandler creates a session handler
func NewSessionHandler(controller *session.Controller, archive storage.Archive) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		archive:    archive,
	}
}

// Move handles POST /sessions/{session_id}/moves
func (h *SessionHandler) Move(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	snapshot, err := h.controller.SubmitMove(r.Context(), sessionID, model.ConnectionID(req.ConnectionID), req.Column)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Session{Session: snapshot})
}

// Rejoin handles POST /sessions/{session_id}/rejoin
func (h *SessionHandler) Rejoin(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	var req request.RejoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.ParticipantID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("participant_id is required"))
		return
	}

	snapshot, err := h.controller.Rejoin(r.Context(), sessionID,
		model.ParticipantID(req.ParticipantID), model.ConnectionID(req.ConnectionID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Session{Session: snapshot})
}

// Get handles GET /sessions/{session_id}. Live sessions come from the
// controller; finished ones from the archive.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	snapshot, err := h.controller.GetSession(sessionID)
	if err == nil {
		response.JSON(w, http.StatusOK, response.Session{Session: snapshot})
		return
	}
	if !errors.Is(err, model.ErrSessionNotFound) {
		apierr.WriteError(w, err)
		return
	}

	record, err := h.archive.GetCompletedSession(r.Context(), sessionID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionRecord{Session: record})
}

// Recent handles GET /sessions
func (h *SessionHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	records, err := h.archive.RecentSessions(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RecentSessions{Sessions: records})
}
