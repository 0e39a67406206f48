package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/storage"
)

// Archive is a Redis-backed implementation of the archive interface
type Archive struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis archive instance
func New(cfg Config) (*Archive, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Archive{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis archive with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Archive {
	return &Archive{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (a *Archive) Close() error {
	return a.client.Close()
}

// Ensure Archive implements the interface
var _ storage.Archive = (*Archive)(nil)

// Session record operations

func (a *Archive) SaveCompletedSession(ctx context.Context, record *model.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := sessionKey(record.ID)
	indexKey := recentSessionsIndexKey()

	// Use pipeline for atomic save + index update
	pipe := a.client.Pipeline()
	pipe.Set(ctx, key, data, a.cfg.SessionRecordTTL)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(record.EndedAt.UnixMilli()),
		Member: string(record.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (a *Archive) GetCompletedSession(ctx context.Context, id model.SessionID) (*model.SessionRecord, error) {
	data, err := a.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *Archive) RecentSessions(ctx context.Context, limit int) ([]*model.SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	// Newest first from the ZSET index
	ids, err := a.client.ZRevRange(ctx, recentSessionsIndexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.SessionRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(model.SessionID(id))
	}

	values, err := a.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.SessionRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record may have expired out from under the index
		}
		var record model.SessionRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	return records, nil
}

// Stats operations

func (a *Archive) SaveStats(ctx context.Context, stats *model.ParticipantStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return a.client.Set(ctx, statsKey(stats.Handle), data, 0).Err()
}

func (a *Archive) GetStats(ctx context.Context, handle string) (*model.ParticipantStats, error) {
	data, err := a.client.Get(ctx, statsKey(handle)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}

	var stats model.ParticipantStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
