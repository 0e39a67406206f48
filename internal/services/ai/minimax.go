package ai

import (
	"math"

	"github.com/fourstack/dropfour/internal/model"
)

const (
	// DefaultSearchDepth balances strength against per-move latency;
	// latency grows roughly exponentially with depth
	DefaultSearchDepth = 5

	// winValue matches the board evaluation saturation. Terminal positions
	// get a depth bonus on top so the search prefers faster wins and
	// slower losses.
	winValue = 1000
)

// centerOut is the fallback column preference when the search finds no
// useful move: center first, then outward
var centerOut = []int{3, 4, 2, 5, 1, 6, 0}

// MinimaxStrategy picks columns via depth-limited minimax with alpha-beta
// pruning over cloned boards
type MinimaxStrategy struct {
	depth int
}

var _ Strategy = (*MinimaxStrategy)(nil)

// NewMinimaxStrategy creates a MinimaxStrategy searching to the given depth
// (plies). Depths outside 1..9 fall back to the default.
func NewMinimaxStrategy(depth int) *MinimaxStrategy {
	if depth < 1 || depth > 9 {
		depth = DefaultSearchDepth
	}
	return &MinimaxStrategy{depth: depth}
}

// ChooseColumn returns the column to play for selfID. Immediate wins are
// taken and immediate opponent wins are blocked before any deeper search.
func (s *MinimaxStrategy) ChooseColumn(board *model.Board, selfID, opponentID model.ParticipantID) int {
	legal := legalColumns(board)
	if len(legal) == 0 {
		return -1
	}

	// Take an immediate win
	for _, col := range legal {
		probe := board.Clone()
		_, _ = probe.Drop(col, selfID)
		if probe.Winner() == selfID {
			return col
		}
	}

	// Block an immediate opponent win
	for _, col := range legal {
		probe := board.Clone()
		_, _ = probe.Drop(col, opponentID)
		if probe.Winner() == opponentID {
			return col
		}
	}

	bestCol := -1
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	for _, col := range legal {
		child := board.Clone()
		_, _ = child.Drop(col, selfID)
		score := s.search(child, s.depth-1, alpha, beta, false, selfID, opponentID)
		// Ties keep the first column encountered
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		if score > alpha {
			alpha = score
		}
	}

	if bestCol == -1 {
		return s.fallbackColumn(board)
	}
	return bestCol
}

// search evaluates the position to the remaining depth, maximizing for
// selfID and alternating perspective each ply. Every branch explores its
// own clone; no board state is shared across recursive calls.
func (s *MinimaxStrategy) search(b *model.Board, depth, alpha, beta int, maximizing bool, selfID, opponentID model.ParticipantID) int {
	switch b.Winner() {
	case selfID:
		return winValue + depth
	case opponentID:
		return -winValue - depth
	}
	if depth == 0 || b.IsFull() {
		return b.Evaluate(selfID, opponentID)
	}

	if maximizing {
		best := math.MinInt
		for _, col := range legalColumns(b) {
			child := b.Clone()
			_, _ = child.Drop(col, selfID)
			score := s.search(child, depth-1, alpha, beta, false, selfID, opponentID)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, col := range legalColumns(b) {
		child := b.Clone()
		_, _ = child.Drop(col, opponentID)
		score := s.search(child, depth-1, alpha, beta, true, selfID, opponentID)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// fallbackColumn returns the first legal column in center-out order
func (s *MinimaxStrategy) fallbackColumn(b *model.Board) int {
	for _, col := range centerOut {
		if b.IsLegalColumn(col) {
			return col
		}
	}
	return -1
}
