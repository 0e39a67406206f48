package session

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fourstack/dropfour/internal/model"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
}

func (s *RegistrySuite) session() *model.Session {
	return &model.Session{
		ID: "session-1",
		Participants: [2]*model.Participant{
			{ID: "p1", ConnectionID: "conn-1", Connected: true},
			{ID: "p2", IsAI: true, Connected: true},
		},
		Board:  model.NewBoard(),
		Turn:   "p1",
		Status: model.SessionStatusInProgress,
	}
}

func (s *RegistrySuite) TestAddIndexesParticipantsAndConnections() {
	sess := s.session()
	s.registry.Add(sess)

	s.Same(sess, s.registry.Get("session-1"))
	s.Same(sess, s.registry.ByParticipant("p1"))
	s.Same(sess, s.registry.ByParticipant("p2"))
	s.Same(sess, s.registry.ByConnection("conn-1"))
	s.Equal(1, s.registry.Count())
}

func (s *RegistrySuite) TestAIParticipantHasNoConnectionIndex() {
	s.registry.Add(s.session())
	s.Nil(s.registry.ByConnection(""))
}

func (s *RegistrySuite) TestUnknownLookupsReturnNil() {
	s.Nil(s.registry.Get("nonexistent"))
	s.Nil(s.registry.ByParticipant("nonexistent"))
	s.Nil(s.registry.ByConnection("nonexistent"))
}

func (s *RegistrySuite) TestRebindConnection() {
	sess := s.session()
	s.registry.Add(sess)

	s.registry.UnbindConnection("conn-1")
	s.Nil(s.registry.ByConnection("conn-1"))

	s.registry.BindConnection("conn-2", sess.ID)
	s.Same(sess, s.registry.ByConnection("conn-2"))
}

func (s *RegistrySuite) TestRemoveDropsAllIndexes() {
	sess := s.session()
	s.registry.Add(sess)
	s.registry.Remove(sess.ID)

	s.Nil(s.registry.Get("session-1"))
	s.Nil(s.registry.ByParticipant("p1"))
	s.Nil(s.registry.ByConnection("conn-1"))
	s.Equal(0, s.registry.Count())
}

func (s *RegistrySuite) TestRemoveUnknownIsNoOp() {
	s.registry.Remove("nonexistent")
	s.Equal(0, s.registry.Count())
}
