package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fourstack/dropfour/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Two humans queue, play to a win, and the result is archived
func (s *IntegrationSuite) TestCompleteHumanSessionFlow() {
	// Step 1: First participant queues and waits
	first, err := s.app.Controller.JoinQueue(s.ctx, "conn-a", "alice")
	s.Require().NoError(err)
	s.True(first.Queued)

	// Step 2: Second participant arrives and pairing happens immediately
	second, err := s.app.Controller.JoinQueue(s.ctx, "conn-b", "bob")
	s.Require().NoError(err)
	s.Require().NotNil(second.Session)
	sessionID := second.Session.SessionID
	s.Equal(first.ParticipantID, second.Session.Turn)

	// Step 3: Alice stacks column 2 while Bob spreads out
	script := []struct {
		conn model.ConnectionID
		col  int
	}{
		{"conn-a", 2}, {"conn-b", 0},
		{"conn-a", 2}, {"conn-b", 1},
		{"conn-a", 2}, {"conn-b", 5},
		{"conn-a", 2},
	}
	for _, m := range script {
		_, err := s.app.Controller.SubmitMove(s.ctx, sessionID, m.conn, m.col)
		s.Require().NoError(err)
	}

	// Step 4: The session is archived with the winning outcome
	record, err := s.app.Archive.GetCompletedSession(s.ctx, sessionID)
	s.Require().NoError(err)
	s.Equal(model.SessionStatusCompleted, record.Status)
	s.Equal(model.WinnerOutcome(first.ParticipantID), record.Outcome)
	s.Len(record.Moves, 7)

	// Step 5: Stats reflect the result
	winner, err := s.app.Archive.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, winner.Wins)

	loser, err := s.app.Archive.GetStats(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1, loser.Losses)
}

// Test: A lone participant falls back to an AI opponent and the minimax
// strategy answers every human move
func (s *IntegrationSuite) TestAIFallbackSessionFlow() {
	result, err := s.app.Controller.JoinQueue(s.ctx, "conn-a", "alice")
	s.Require().NoError(err)
	s.True(result.Queued)

	// No human arrives within the pairing timeout
	s.app.MockClock.Advance(10 * time.Second)
	s.Equal(1, s.app.Controller.LiveSessionCount())

	// Play a few exchanges; after each human move plus the AI delay the
	// turn must come back to the human
	started, err := s.app.Controller.SessionForParticipant(result.ParticipantID)
	s.Require().NoError(err)
	sessionID := started.SessionID

	for _, col := range []int{3, 2, 4} {
		snapshot, err := s.app.Controller.SubmitMove(s.ctx, sessionID, "conn-a", col)
		s.Require().NoError(err)
		s.NotEqual(result.ParticipantID, snapshot.Turn)

		s.app.MockClock.Advance(500 * time.Millisecond)

		snapshot, err = s.app.Controller.GetSession(sessionID)
		s.Require().NoError(err)
		s.Equal(result.ParticipantID, snapshot.Turn)
		s.Equal(model.SessionStatusInProgress, snapshot.Status)
	}
}

// Test: A disconnected participant who never returns forfeits
func (s *IntegrationSuite) TestAbandonmentFlow() {
	first, err := s.app.Controller.JoinQueue(s.ctx, "conn-a", "alice")
	s.Require().NoError(err)
	second, err := s.app.Controller.JoinQueue(s.ctx, "conn-b", "bob")
	s.Require().NoError(err)
	sessionID := second.Session.SessionID

	s.app.Controller.Disconnect("conn-a")

	// Bob rejoining within the grace period would have kept it alive;
	// nobody returns, so the session is abandoned in Bob's favor
	s.app.MockClock.Advance(30 * time.Second)

	record, err := s.app.Archive.GetCompletedSession(s.ctx, sessionID)
	s.Require().NoError(err)
	s.Equal(model.SessionStatusAbandoned, record.Status)
	s.Equal(model.WinnerOutcome(second.ParticipantID), record.Outcome)
	s.NotEqual(model.WinnerOutcome(first.ParticipantID), record.Outcome)
}
