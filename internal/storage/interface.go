package storage

import (
	"context"

	"github.com/fourstack/dropfour/internal/model"
)

// Archive defines the interface for persisting finished sessions and
// participant stats. Live sessions never touch storage; a session is
// written exactly once, at the moment it ends.
type Archive interface {
	// Session record operations
	SaveCompletedSession(ctx context.Context, record *model.SessionRecord) error
	GetCompletedSession(ctx context.Context, id model.SessionID) (*model.SessionRecord, error)
	RecentSessions(ctx context.Context, limit int) ([]*model.SessionRecord, error)

	// Stats operations
	SaveStats(ctx context.Context, stats *model.ParticipantStats) error
	GetStats(ctx context.Context, handle string) (*model.ParticipantStats, error)
}
