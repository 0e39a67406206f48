package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fourstack/dropfour/internal/model"
)

const (
	// StreamKey is the Redis stream lifecycle events are appended to
	StreamKey = "dropfour:events"

	// maxStreamLength caps the stream with approximate trimming
	maxStreamLength = 100000

	publishTimeout = 2 * time.Second
)

// RedisPublisher appends lifecycle events to a Redis stream. Publish
// failures are logged and dropped; they never propagate to gameplay.
type RedisPublisher struct {
	client *redis.Client
	logger *slog.Logger
}

// New creates a Redis publisher from a connection URL
func New(url string, logger *slog.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, logger), nil
}

// NewWithClient creates a Redis publisher with an existing client (for testing)
func NewWithClient(client *redis.Client, logger *slog.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		logger: logger.With(slog.String("component", "analytics")),
	}
}

var _ Publisher = (*RedisPublisher)(nil)

func (p *RedisPublisher) Publish(ctx context.Context, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("failed to marshal event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: maxStreamLength,
		Approx: true,
		Values: map[string]any{
			"type":  string(event.Type),
			"event": string(data),
		},
	}).Err()
	if err != nil {
		p.logger.Warn("failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
