package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fourstack/dropfour/internal/model"
	"github.com/fourstack/dropfour/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
}

func (s *HubSuite) TestRegisterAndSend() {
	client := s.hub.Register("conn-1", time.Now())
	s.Equal(1, s.hub.ClientCount())

	s.hub.Send("conn-1", EventQueued, QueuedPayload{ParticipantID: "p1", TimeoutSeconds: 10})

	select {
	case msg := <-client.send:
		s.Contains(string(msg), "event: queued\n")
		s.Contains(string(msg), `"participant_id":"p1"`)
		s.Contains(string(msg), "\n\n")
	default:
		s.Fail("expected a buffered message")
	}
}

func (s *HubSuite) TestSendToUnknownConnectionIsDropped() {
	s.hub.Send("nonexistent", EventQueued, QueuedPayload{})
	s.hub.Send("", EventQueued, QueuedPayload{})
}

func (s *HubSuite) TestReregisterClosesPreviousStream() {
	first := s.hub.Register("conn-1", time.Now())
	second := s.hub.Register("conn-1", time.Now())
	s.Equal(1, s.hub.ClientCount())

	_, open := <-first.send
	s.False(open, "superseded stream should be closed")

	s.hub.Send("conn-1", EventConnected, ConnectedPayload{ConnectionID: "conn-1"})
	select {
	case <-second.send:
	default:
		s.Fail("replacement stream should receive events")
	}
}

func (s *HubSuite) TestUnregisterOnlyRemovesCurrentClient() {
	first := s.hub.Register("conn-1", time.Now())
	second := s.hub.Register("conn-1", time.Now())

	// The stale handle must not evict the replacement
	s.hub.Unregister(first)
	s.Equal(1, s.hub.ClientCount())

	s.hub.Unregister(second)
	s.Equal(0, s.hub.ClientCount())
}

func (s *HubSuite) TestFullBufferDropsInsteadOfBlocking() {
	client := s.hub.Register("conn-1", time.Now())

	for i := 0; i < sendBufferSize+10; i++ {
		s.hub.Send("conn-1", EventMoveApplied, MoveAppliedPayload{NextTurn: model.ParticipantID(fmt.Sprintf("p%d", i))})
	}

	s.Len(client.send, sendBufferSize)
}

func (s *HubSuite) TestFormatSSEMessage() {
	msg := formatSSEMessage("session_started", []byte(`{"a":1}`))
	s.Equal("event: session_started\ndata: {\"a\":1}\n\n", string(msg))
}
