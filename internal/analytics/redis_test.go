package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/testutil"
)

type RedisPublisherSuite struct {
	suite.Suite
	mini      *miniredis.Miniredis
	client    *redis.Client
	publisher *RedisPublisher
	ctx       context.Context
}

func TestRedisPublisherSuite(t *testing.T) {
	suite.Run(t, new(RedisPublisherSuite))
}

func (s *RedisPublisherSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.publisher = NewWithClient(s.client, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RedisPublisherSuite) TearDownTest() {
	_ = s.publisher.Close()
	s.mini.Close()
}

func (s *RedisPublisherSuite) TestPublishAppendsToStream() {
	event := model.Event{
		Type:      model.EventSessionEnded,
		Timestamp: time.Now().UTC(),
		SessionID: "session-1",
		Payload: model.SessionEndedPayload{
			Outcome:   "p1",
			Reason:    model.EndReasonWin,
			MoveCount: 7,
		},
	}

	s.publisher.Publish(s.ctx, event)

	entries, err := s.client.XRange(s.ctx, StreamKey, "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("session_ended", entries[0].Values["type"])

	var decoded model.Event
	err = json.Unmarshal([]byte(entries[0].Values["event"].(string)), &decoded)
	s.Require().NoError(err)
	s.Equal(model.EventSessionEnded, decoded.Type)
	s.Equal(model.SessionID("session-1"), decoded.SessionID)
}

func (s *RedisPublisherSuite) TestPublishPreservesOrder() {
	for _, t := range []model.EventType{model.EventSessionStarted, model.EventMoveApplied, model.EventSessionEnded} {
		s.publisher.Publish(s.ctx, model.Event{Type: t, Timestamp: time.Now()})
	}

	entries, err := s.client.XRange(s.ctx, StreamKey, "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("session_started", entries[0].Values["type"])
	s.Equal("move_applied", entries[1].Values["type"])
	s.Equal("session_ended", entries[2].Values["type"])
}

func (s *RedisPublisherSuite) TestPublishSurvivesBackendFailure() {
	s.mini.Close()

	// Must not panic or block; the failure is logged and dropped
	s.publisher.Publish(s.ctx, model.Event{Type: model.EventMoveApplied, Timestamp: time.Now()})
}
