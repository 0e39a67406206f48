package model

import "time"

// ParticipantID uniquely identifies a participant across the system
type ParticipantID string

// ConnectionID identifies a live client connection. It is empty while a
// participant is disconnected, and always empty for AI participants.
type ConnectionID string

// Participant represents one side of a session: a human or an AI opponent
type Participant struct {
	ID           ParticipantID
	DisplayName  string // best-effort handle, not a verified identity
	ConnectionID ConnectionID
	Wins         int
	Losses       int
	IsAI         bool
	Connected    bool
	LastSeen     time.Time
}
