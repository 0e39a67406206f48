package model

import "time"

// SessionRecord is the finalized form of a session handed to the archive.
// Unlike the presentation snapshot it keeps the full move history.
type SessionRecord struct {
	ID           SessionID          `json:"id"`
	Participants [2]ParticipantView `json:"participants"`
	Status       SessionStatus      `json:"status"`
	Outcome      Outcome            `json:"outcome"`
	Reason       string             `json:"reason"`
	Moves        []Move             `json:"moves"`
	CreatedAt    time.Time          `json:"created_at"`
	EndedAt      time.Time          `json:"ended_at"`
}

// NewSessionRecord builds the archive record for a terminal session
func NewSessionRecord(s *Session, reason string) *SessionRecord {
	var views [2]ParticipantView
	for i, p := range s.Participants {
		views[i] = ParticipantView{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			IsAI:        p.IsAI,
			Connected:   p.Connected,
		}
	}

	moves := make([]Move, len(s.Moves))
	copy(moves, s.Moves)

	return &SessionRecord{
		ID:           s.ID,
		Participants: views,
		Status:       s.Status,
		Outcome:      s.Outcome,
		Reason:       reason,
		Moves:        moves,
		CreatedAt:    s.CreatedAt,
		EndedAt:      s.EndedAt,
	}
}

// ParticipantStats is the simple cross-session win/loss counter, keyed by
// display handle
type ParticipantStats struct {
	Handle    string    `json:"handle"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Draws     int       `json:"draws"`
	UpdatedAt time.Time `json:"updated_at"`
}
