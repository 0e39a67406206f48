package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fourstack/dropfour/internal/api/handler"
	apimiddleware "github.com/fourstack/dropfour/internal/api/middleware"
	"github.com/fourstack/dropfour/internal/api/response"
	"github.com/fourstack/dropfour/internal/middleware"
	"github.com/fourstack/dropfour/internal/notify"
	"github.com/fourstack/dropfour/internal/services/session"
	"github.com/fourstack/dropfour/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *session.Controller
	Archive    storage.Archive
	Hub        *notify.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	streamHandler := handler.NewStreamHandler(cfg.Hub, cfg.Controller)
	queueHandler := handler.NewQueueHandler(cfg.Controller)
	sessionHandler := handler.NewSessionHandler(cfg.Controller, cfg.Archive)
	statsHandler := handler.NewStatsHandler(cfg.Archive)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Event stream; everything gameplay-related hangs off the connection
	// id assigned here
	api.HandleFunc("/stream", streamHandler.Stream).Methods(http.MethodGet)

	// Matchmaking routes
	api.HandleFunc("/queue/join", queueHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/queue/leave", queueHandler.Leave).Methods(http.MethodPost)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Recent).Methods(http.MethodGet)
	sessions.HandleFunc("/{session_id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{session_id}/moves", sessionHandler.Move).Methods(http.MethodPost)
	sessions.HandleFunc("/{session_id}/rejoin", sessionHandler.Rejoin).Methods(http.MethodPost)

	// Stats routes
	api.HandleFunc("/stats/{handle}", statsHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg)).Methods(http.MethodGet)

	return r
}

func healthHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status:       "ok",
			LiveSessions: cfg.Controller.LiveSessionCount(),
			Connections:  cfg.Hub.ClientCount(),
		})
	}
}
