package ai

import (
	"testing"

	"github.com/fourstack/dropfour/internal/dependencies/mocks"
	"github.com/fourstack/dropfour/internal/model"
	"github.com/stretchr/testify/suite"
)

type MinimaxSuite struct {
	suite.Suite
	board *model.Board
}

func TestMinimaxSuite(t *testing.T) {
	suite.Run(t, new(MinimaxSuite))
}

func (s *MinimaxSuite) SetupTest() {
	s.board = model.NewBoard()
}

func (s *MinimaxSuite) drop(col int, id model.ParticipantID) {
	_, err := s.board.Drop(col, id)
	s.Require().NoError(err)
}

func (s *MinimaxSuite) TestTakesImmediateWin() {
	for i := 0; i < 3; i++ {
		s.drop(2, "x")
	}
	s.drop(0, "o")
	s.drop(1, "o")

	strategy := NewMinimaxStrategy(5)
	s.Equal(2, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestPrefersWinOverBlock() {
	// Both sides are one move from winning; taking the win beats blocking
	for i := 0; i < 3; i++ {
		s.drop(1, "x")
		s.drop(5, "o")
	}

	strategy := NewMinimaxStrategy(5)
	s.Equal(1, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestBlocksOpponentWin() {
	// Opponent threatens 0-1-2-3 along the bottom row
	s.drop(0, "o")
	s.drop(1, "o")
	s.drop(2, "o")
	s.drop(5, "x")
	s.drop(6, "x")

	strategy := NewMinimaxStrategy(5)
	s.Equal(3, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestBlocksVerticalThreat() {
	s.drop(4, "o")
	s.drop(4, "o")
	s.drop(4, "o")
	s.drop(0, "x")
	s.drop(1, "x")

	strategy := NewMinimaxStrategy(5)
	s.Equal(4, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestOpensInCenterAtShallowDepth() {
	// With one ply of lookahead the center column scores highest
	strategy := NewMinimaxStrategy(1)
	s.Equal(3, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestReturnsMinusOneOnFullBoard() {
	for col := 0; col < model.BoardColumns; col++ {
		base, other := model.ParticipantID("x"), model.ParticipantID("o")
		if col%2 == 1 {
			base, other = other, base
		}
		for row := 0; row < model.BoardRows; row++ {
			id := base
			if row == 2 || row == 3 {
				id = other
			}
			s.drop(col, id)
		}
	}

	strategy := NewMinimaxStrategy(3)
	s.Equal(-1, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestDoesNotMutateInputBoard() {
	s.drop(3, "o")
	before := s.board.Clone()

	strategy := NewMinimaxStrategy(4)
	_ = strategy.ChooseColumn(s.board, "x", "o")

	s.Equal(before.Cells, s.board.Cells)
}

func (s *MinimaxSuite) TestDepthOutOfRangeFallsBackToDefault() {
	s.Equal(DefaultSearchDepth, NewMinimaxStrategy(0).depth)
	s.Equal(DefaultSearchDepth, NewMinimaxStrategy(42).depth)
	s.Equal(3, NewMinimaxStrategy(3).depth)
}

func (s *MinimaxSuite) TestRandomStrategyPicksLegalColumn() {
	// Column 0 is full; index 0 of the legal set is then column 1
	for i := 0; i < model.BoardRows; i++ {
		s.drop(0, "x")
	}

	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0)
	strategy := NewRandomStrategy(rnd)
	s.Equal(1, strategy.ChooseColumn(s.board, "x", "o"))
}

func (s *MinimaxSuite) TestNewOpponentIsConnectedAI() {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(2)

	p := NewOpponent(rnd)
	s.True(p.IsAI)
	s.True(p.Connected)
	s.NotEmpty(p.ID)
	s.Equal(opponentNames[2], p.DisplayName)
}
