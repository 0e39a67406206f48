package matchmaking

import (
	"testing"
	"time"

	"github.com/fourstack/dropfour/internal/model"
	"github.com/stretchr/testify/suite"
)

type QueueSuite struct {
	suite.Suite
	queue *Queue
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupTest() {
	s.queue = New()
}

func (s *QueueSuite) entry(id model.ParticipantID, conn model.ConnectionID) model.QueueEntry {
	return model.QueueEntry{
		Participant: model.Participant{
			ID:           id,
			DisplayName:  string(id),
			ConnectionID: conn,
			Connected:    true,
		},
		EnqueuedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *QueueSuite) TestFirstJoinEnqueues() {
	paired, replaced := s.queue.Join(s.entry("p1", "c1"))
	s.Nil(paired)
	s.False(replaced)
	s.Equal(1, s.queue.Len())
}

func (s *QueueSuite) TestSecondJoinPairsWithOldest() {
	_, _ = s.queue.Join(s.entry("p1", "c1"))

	paired, replaced := s.queue.Join(s.entry("p2", "c2"))
	s.Require().NotNil(paired)
	s.False(replaced)
	s.Equal(model.ParticipantID("p1"), paired.Participant.ID)
	s.Equal(0, s.queue.Len())
}

func (s *QueueSuite) TestDuplicateJoinReplacesStaleEntry() {
	_, _ = s.queue.Join(s.entry("p1", "c1"))

	paired, replaced := s.queue.Join(s.entry("p1", "c1-new"))
	s.Nil(paired)
	s.True(replaced)
	s.Equal(1, s.queue.Len())

	// The refreshed entry carries the new connection handle
	e, ok := s.queue.Remove("p1")
	s.Require().True(ok)
	s.Equal(model.ConnectionID("c1-new"), e.Participant.ConnectionID)
}

func (s *QueueSuite) TestRemoveMissingParticipantReportsFalse() {
	_, ok := s.queue.Remove("nobody")
	s.False(ok)
}

func (s *QueueSuite) TestRemoveAfterPairingIsNoOp() {
	_, _ = s.queue.Join(s.entry("p1", "c1"))
	paired, _ := s.queue.Join(s.entry("p2", "c2"))
	s.Require().NotNil(paired)

	// The countdown for p1 fires after pairing already consumed the entry
	_, ok := s.queue.Remove("p1")
	s.False(ok)
}

func (s *QueueSuite) TestRemoveByConnection() {
	_, _ = s.queue.Join(s.entry("p1", "c1"))

	e, ok := s.queue.RemoveByConnection("c1")
	s.Require().True(ok)
	s.Equal(model.ParticipantID("p1"), e.Participant.ID)
	s.Equal(0, s.queue.Len())

	_, ok = s.queue.RemoveByConnection("c1")
	s.False(ok)
}
