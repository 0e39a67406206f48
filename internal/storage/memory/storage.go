package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/storage"
)

// Archive is an in-memory implementation of the archive interface
type Archive struct {
	mu sync.RWMutex

	records map[model.SessionID]*model.SessionRecord
	stats   map[string]*model.ParticipantStats
}

// New creates a new in-memory archive instance
func New() *Archive {
	return &Archive{
		records: make(map[model.SessionID]*model.SessionRecord),
		stats:   make(map[string]*model.ParticipantStats),
	}
}

// Ensure Archive implements the interface
var _ storage.Archive = (*Archive)(nil)

// Session record operations

func (a *Archive) SaveCompletedSession(ctx context.Context, record *model.SessionRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[record.ID] = record
	return nil
}

func (a *Archive) GetCompletedSession(ctx context.Context, id model.SessionID) (*model.SessionRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	record, ok := a.records[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

func (a *Archive) RecentSessions(ctx context.Context, limit int) ([]*model.SessionRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	records := make([]*model.SessionRecord, 0, len(a.records))
	for _, record := range a.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].EndedAt.After(records[j].EndedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Stats operations

func (a *Archive) SaveStats(ctx context.Context, stats *model.ParticipantStats) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats[stats.Handle] = stats
	return nil
}

func (a *Archive) GetStats(ctx context.Context, handle string) (*model.ParticipantStats, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	stats, ok := a.stats[handle]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	return stats, nil
}
