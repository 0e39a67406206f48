package ai

import (
	"github.com/fourstack/dropfour/internal/dependencies/random"
	"github.com/fourstack/dropfour/internal/model"
)

// RandomStrategy picks a uniformly random legal column. It is the
// low-difficulty opponent and a convenient test double.
type RandomStrategy struct {
	random random.Random
}

var _ Strategy = (*RandomStrategy)(nil)

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseColumn picks a random legal column, or -1 on a full board
func (s *RandomStrategy) ChooseColumn(board *model.Board, selfID, opponentID model.ParticipantID) int {
	legal := legalColumns(board)
	if len(legal) == 0 {
		return -1
	}
	return legal[s.random.Intn(len(legal))]
}
