package notify

import "github.com/fourstack/dropfour/internal/model"

// Event names pushed to clients
const (
	EventConnected            = "connected"
	EventQueued               = "queued"
	EventSessionStarted       = "session_started"
	EventSessionRejoined      = "session_rejoined"
	EventMoveApplied          = "move_applied"
	EventSessionEnded         = "session_ended"
	EventOpponentDisconnected = "opponent_disconnected"
	EventOpponentReconnected  = "opponent_reconnected"
	EventMoveRejected         = "move_rejected"
)

// ConnectedPayload is sent once when an event stream opens
type ConnectedPayload struct {
	ConnectionID model.ConnectionID `json:"connection_id"`
}

// QueuedPayload tells a participant they are waiting for an opponent
type QueuedPayload struct {
	ParticipantID  model.ParticipantID `json:"participant_id"`
	TimeoutSeconds int                 `json:"timeout_seconds"`
}

// SessionStartedPayload announces a new session to one of its participants
type SessionStartedPayload struct {
	Snapshot   model.Snapshot      `json:"snapshot"`
	YourID     model.ParticipantID `json:"your_id"`
	OpponentID model.ParticipantID `json:"opponent_id"`
	VersusAI   bool                `json:"versus_ai"`
}

// SessionRejoinedPayload confirms a reconnect to the rejoining participant
type SessionRejoinedPayload struct {
	Snapshot   model.Snapshot      `json:"snapshot"`
	YourID     model.ParticipantID `json:"your_id"`
	OpponentID model.ParticipantID `json:"opponent_id"`
}

// MoveAppliedPayload broadcasts a successfully applied move
type MoveAppliedPayload struct {
	Snapshot model.Snapshot      `json:"snapshot"`
	Move     model.Move          `json:"move"`
	NextTurn model.ParticipantID `json:"next_turn"`
}

// SessionEndedPayload broadcasts a terminal session state
type SessionEndedPayload struct {
	Snapshot model.Snapshot `json:"snapshot"`
	Outcome  model.Outcome  `json:"outcome"`
	Reason   string         `json:"reason"`
}

// OpponentDisconnectedPayload warns the remaining participant
type OpponentDisconnectedPayload struct {
	ParticipantID  model.ParticipantID `json:"participant_id"`
	TimeoutSeconds int                 `json:"timeout_seconds"`
}

// OpponentReconnectedPayload clears a disconnect warning
type OpponentReconnectedPayload struct {
	ParticipantID model.ParticipantID `json:"participant_id"`
}

// MoveRejectedPayload mirrors a rejected intent back to its sender
type MoveRejectedPayload struct {
	Reason string `json:"reason"`
}
