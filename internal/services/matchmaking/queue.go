package matchmaking

import (
	"github.com/fourstack/dropfour/internal/model"
)

// Queue is the FIFO matchmaking queue. It is a passive structure: the
// session controller serializes access and owns the pairing countdowns, so
// the queue itself needs no locking.
type Queue struct {
	entries []model.QueueEntry
}

// New creates an empty queue
func New() *Queue {
	return &Queue{}
}

// Join either pairs the participant with the oldest waiting entry or
// enqueues them. The returned entry, when non-nil, has been removed from
// the queue and becomes the first-turn participant of the new session.
//
// A participant id may hold at most one outstanding entry: a second join
// before resolution replaces the stale entry in place (refreshing its
// connection handle and enqueue time) and reports replaced=true.
func (q *Queue) Join(entry model.QueueEntry) (paired *model.QueueEntry, replaced bool) {
	for i := range q.entries {
		if q.entries[i].Participant.ID == entry.Participant.ID {
			q.entries[i] = entry
			return nil, true
		}
	}

	if len(q.entries) > 0 {
		oldest := q.entries[0]
		q.entries = q.entries[1:]
		return &oldest, false
	}

	q.entries = append(q.entries, entry)
	return nil, false
}

// Remove takes the entry for the given participant out of the queue. It
// reports false when the participant is no longer queued, which callers
// treat as "already paired, do nothing".
func (q *Queue) Remove(id model.ParticipantID) (model.QueueEntry, bool) {
	for i, e := range q.entries {
		if e.Participant.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e, true
		}
	}
	return model.QueueEntry{}, false
}

// RemoveByConnection takes the entry bound to the given connection out of
// the queue, if any
func (q *Queue) RemoveByConnection(conn model.ConnectionID) (model.QueueEntry, bool) {
	for i, e := range q.entries {
		if e.Participant.ConnectionID == conn {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e, true
		}
	}
	return model.QueueEntry{}, false
}

// Len returns the number of waiting entries
func (q *Queue) Len() int {
	return len(q.entries)
}
