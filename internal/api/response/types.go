package response

import (
	"github.com/fourstack/dropfour/internal/model"
)

// JoinQueue is the response for a queue join: either a waiting
// acknowledgement or, when an opponent was already waiting, the session
// that just started
type JoinQueue struct {
	ParticipantID model.ParticipantID `json:"participant_id"`
	Queued        bool                `json:"queued"`
	Session       *model.Snapshot     `json:"session,omitempty"`
}

// Session wraps a session snapshot
type Session struct {
	Session model.Snapshot `json:"session"`
}

// SessionRecord wraps an archived session record
type SessionRecord struct {
	Session *model.SessionRecord `json:"session"`
}

// RecentSessions lists recently finished sessions, newest first
type RecentSessions struct {
	Sessions []*model.SessionRecord `json:"sessions"`
}

// Stats wraps a participant's cross-session counters
type Stats struct {
	Stats *model.ParticipantStats `json:"stats"`
}

// Health is the healthcheck response
type Health struct {
	Status       string `json:"status"`
	LiveSessions int    `json:"live_sessions"`
	Connections  int    `json:"connections"`
}
