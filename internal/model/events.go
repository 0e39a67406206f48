package model

import "time"

// EventType identifies the type of lifecycle event
type EventType string

const (
	EventQueueJoined             EventType = "queue_joined"
	EventQueueTimeout            EventType = "queue_timeout"
	EventSessionStarted          EventType = "session_started"
	EventMoveApplied             EventType = "move_applied"
	EventSessionEnded            EventType = "session_ended"
	EventParticipantDisconnected EventType = "participant_disconnected"
	EventParticipantReconnected  EventType = "participant_reconnected"
)

// End reasons carried on session_ended events
const (
	EndReasonWin       = "win"
	EndReasonDraw      = "draw"
	EndReasonAbandoned = "abandoned"
)

// Event is the base structure for all lifecycle events published to the
// analytics sink. Publishing is fire-and-forget; gameplay never depends on
// a publish succeeding.
type Event struct {
	Type          EventType     `json:"type"`
	Timestamp     time.Time     `json:"timestamp"`
	SessionID     SessionID     `json:"session_id,omitempty"`
	ParticipantID ParticipantID `json:"participant_id,omitempty"`
	Payload       any           `json:"payload,omitempty"`
}

// SessionStartedPayload contains data for session started events
type SessionStartedPayload struct {
	Participants [2]ParticipantID `json:"participants"`
	FirstTurn    ParticipantID    `json:"first_turn"`
	VersusAI     bool             `json:"versus_ai"`
}

// MoveAppliedPayload contains data for move applied events
type MoveAppliedPayload struct {
	Move     Move          `json:"move"`
	NextTurn ParticipantID `json:"next_turn"`
}

// SessionEndedPayload contains data for session ended events
type SessionEndedPayload struct {
	Outcome   Outcome `json:"outcome"`
	Reason    string  `json:"reason"`
	MoveCount int     `json:"move_count"`
}

// DisconnectPayload contains data for participant disconnected events
type DisconnectPayload struct {
	GraceSeconds int `json:"grace_seconds"`
}
