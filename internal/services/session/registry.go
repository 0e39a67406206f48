package session

import (
	"github.com/fourstack/dropfour/internal/model"
)

// Registry holds the live sessions and the indexes used to route intents to
// them. It is a passive structure: the controller serializes all access, so
// no locking happens here. Terminal sessions are removed immediately after
// archival; a session id present here is always in progress.
type Registry struct {
	sessions      map[model.SessionID]*model.Session
	byParticipant map[model.ParticipantID]model.SessionID
	byConnection  map[model.ConnectionID]model.SessionID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions:      make(map[model.SessionID]*model.Session),
		byParticipant: make(map[model.ParticipantID]model.SessionID),
		byConnection:  make(map[model.ConnectionID]model.SessionID),
	}
}

// Add registers a new live session and indexes its participants
func (r *Registry) Add(s *model.Session) {
	r.sessions[s.ID] = s
	for _, p := range s.Participants {
		r.byParticipant[p.ID] = s.ID
		if p.ConnectionID != "" {
			r.byConnection[p.ConnectionID] = s.ID
		}
	}
}

// Get returns the live session with the given id, or nil
func (r *Registry) Get(id model.SessionID) *model.Session {
	return r.sessions[id]
}

// ByParticipant returns the live session a participant belongs to, or nil
func (r *Registry) ByParticipant(id model.ParticipantID) *model.Session {
	sid, ok := r.byParticipant[id]
	if !ok {
		return nil
	}
	return r.sessions[sid]
}

// ByConnection returns the live session a connection is bound to, or nil
func (r *Registry) ByConnection(conn model.ConnectionID) *model.Session {
	sid, ok := r.byConnection[conn]
	if !ok {
		return nil
	}
	return r.sessions[sid]
}

// BindConnection points a connection at a session, replacing any previous
// binding for that participant's old connection
func (r *Registry) BindConnection(conn model.ConnectionID, id model.SessionID) {
	if conn != "" {
		r.byConnection[conn] = id
	}
}

// UnbindConnection drops a connection index entry
func (r *Registry) UnbindConnection(conn model.ConnectionID) {
	delete(r.byConnection, conn)
}

// Remove drops a session and every index entry pointing at it
func (r *Registry) Remove(id model.SessionID) {
	s, ok := r.sessions[id]
	if !ok {
		return
	}
	for _, p := range s.Participants {
		delete(r.byParticipant, p.ID)
		if p.ConnectionID != "" {
			delete(r.byConnection, p.ConnectionID)
		}
	}
	delete(r.sessions, id)
}

// Count returns the number of live sessions
func (r *Registry) Count() int {
	return len(r.sessions)
}
