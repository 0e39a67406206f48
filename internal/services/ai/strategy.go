package ai

import (
	"github.com/fourstack/dropfour/internal/dependencies/random"
	"github.com/fourstack/dropfour/internal/ids"
	"github.com/fourstack/dropfour/internal/model"
)

// Strategy defines how an AI opponent chooses its column. Implementations
// are pure functions of the board snapshot; no state persists between calls.
type Strategy interface {
	ChooseColumn(board *model.Board, selfID, opponentID model.ParticipantID) int
}

// opponentNames are the display handles given to synthesized AI opponents
var opponentNames = []string{
	"Rook", "Marble", "Cascade", "Gravity", "Token", "Quarto", "Slot",
}

// NewOpponent synthesizes the AI participant for a session that found no
// human opponent in time
func NewOpponent(rnd random.Random) model.Participant {
	return model.Participant{
		ID:          model.ParticipantID("ai-" + ids.New()),
		DisplayName: opponentNames[rnd.Intn(len(opponentNames))],
		IsAI:        true,
		Connected:   true,
	}
}

// legalColumns returns the playable columns in ascending order
func legalColumns(b *model.Board) []int {
	var cols []int
	for col := 0; col < model.BoardColumns; col++ {
		if b.IsLegalColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}
