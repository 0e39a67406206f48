package model

import "time"

// SessionID uniquely identifies a session
type SessionID string

// SessionStatus represents the current phase of a session
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusAbandoned  SessionStatus = "abandoned"
)

// Outcome records how a session ended
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeDraw Outcome = "draw"
	// Any other value is the winning participant's id
)

// WinnerOutcome returns the outcome recording the given participant as winner
func WinnerOutcome(id ParticipantID) Outcome {
	return Outcome(id)
}

// Move is one applied move, immutable once recorded
type Move struct {
	Ordinal       int // 1-based, monotonically increasing per session
	ParticipantID ParticipantID
	Column        int
	Row           int
	Timestamp     time.Time
}

// Session is one complete game instance between two participants. The
// session exclusively owns its two embedded participants; they are distinct
// from any externally persisted record.
type Session struct {
	ID           SessionID
	Participants [2]*Participant
	Board        *Board
	Turn         ParticipantID // whoever must move next; always one of the two ids while in progress
	Status       SessionStatus
	Outcome      Outcome
	Moves        []Move
	CreatedAt    time.Time
	EndedAt      time.Time
}

// Participant returns the embedded participant with the given id, or nil
func (s *Session) Participant(id ParticipantID) *Participant {
	for _, p := range s.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ParticipantByConnection returns the participant bound to the given
// connection, or nil. AI participants never hold a connection.
func (s *Session) ParticipantByConnection(conn ConnectionID) *Participant {
	if conn == "" {
		return nil
	}
	for _, p := range s.Participants {
		if p.ConnectionID == conn {
			return p
		}
	}
	return nil
}

// Opponent returns the other participant, or nil if id is not in the session
func (s *Session) Opponent(id ParticipantID) *Participant {
	for i, p := range s.Participants {
		if p.ID == id {
			return s.Participants[1-i]
		}
	}
	return nil
}

// VersusAI returns true if either participant is AI-controlled
func (s *Session) VersusAI() bool {
	return s.Participants[0].IsAI || s.Participants[1].IsAI
}

// Ended returns true once the session has reached a terminal status
func (s *Session) Ended() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusAbandoned
}
