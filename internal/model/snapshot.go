package model

import "time"

// ParticipantView is the public projection of a participant. Connection
// handles are never exposed.
type ParticipantView struct {
	ID          ParticipantID `json:"id"`
	DisplayName string        `json:"display_name"`
	IsAI        bool          `json:"is_ai"`
	Connected   bool          `json:"connected"`
}

// Snapshot is the presentation-facing view of a session: both participants'
// public fields, the board, whose turn it is and how the session stands.
// Move history detail is reduced to a count.
type Snapshot struct {
	SessionID    SessionID          `json:"session_id"`
	Participants [2]ParticipantView `json:"participants"`
	Turn         ParticipantID      `json:"turn"`
	Board        [][]string         `json:"board"` // column-major, row 0 at the bottom, "" for empty
	Status       SessionStatus      `json:"status"`
	Outcome      Outcome            `json:"outcome"`
	MoveCount    int                `json:"move_count"`
	CreatedAt    time.Time          `json:"created_at"`
	EndedAt      *time.Time         `json:"ended_at,omitempty"`
}

// NewSnapshot builds the public snapshot of a session
func NewSnapshot(s *Session) Snapshot {
	var views [2]ParticipantView
	for i, p := range s.Participants {
		views[i] = ParticipantView{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			IsAI:        p.IsAI,
			Connected:   p.Connected,
		}
	}

	board := make([][]string, BoardColumns)
	for col := 0; col < BoardColumns; col++ {
		board[col] = make([]string, BoardRows)
		for row := 0; row < BoardRows; row++ {
			board[col][row] = string(s.Board.Cells[col][row])
		}
	}

	var endedAt *time.Time
	if !s.EndedAt.IsZero() {
		t := s.EndedAt
		endedAt = &t
	}

	return Snapshot{
		SessionID:    s.ID,
		Participants: views,
		Turn:         s.Turn,
		Board:        board,
		Status:       s.Status,
		Outcome:      s.Outcome,
		MoveCount:    len(s.Moves),
		CreatedAt:    s.CreatedAt,
		EndedAt:      endedAt,
	}
}
