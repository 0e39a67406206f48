package model

// Board dimensions are fixed for the lifetime of a session
const (
	BoardColumns = 7
	BoardRows    = 6
)

// winScore is the saturated evaluation for a completed four-in-a-row
const winScore = 1000

// windowScores maps the number of own cells in an unmixed length-4 window
// to its heuristic value
var windowScores = [5]int{0, 1, 10, 50, winScore}

// Board is a 7x6 connect-four grid. Cells are column-major: Cells[col][row],
// with row 0 at the bottom. Within a column, occupied cells are contiguous
// from row 0 upward (gravity).
type Board struct {
	Cells [][]ParticipantID
}

// NewBoard creates an empty board
func NewBoard() *Board {
	cells := make([][]ParticipantID, BoardColumns)
	for col := range cells {
		cells[col] = make([]ParticipantID, BoardRows)
	}
	return &Board{Cells: cells}
}

// IsLegalColumn returns true if the column is in range and not full
func (b *Board) IsLegalColumn(col int) bool {
	if col < 0 || col >= BoardColumns {
		return false
	}
	return b.Cells[col][BoardRows-1] == ""
}

// Drop places a piece for the given participant in the lowest empty row of
// the column and returns the resulting row. The board is unchanged on error.
func (b *Board) Drop(col int, id ParticipantID) (int, error) {
	if !b.IsLegalColumn(col) {
		return 0, ErrIllegalMove
	}
	for row := 0; row < BoardRows; row++ {
		if b.Cells[col][row] == "" {
			b.Cells[col][row] = id
			return row, nil
		}
	}
	// Unreachable: IsLegalColumn guarantees the top cell is empty
	return 0, ErrIllegalMove
}

// Winner scans all horizontal, vertical and diagonal runs of length 4 and
// returns the owner of the first complete run, or "" if there is none. At
// most one participant can hold a four-run on a legal board, so scan order
// only matters for determinism.
func (b *Board) Winner() ParticipantID {
	for _, w := range windows {
		if owner := b.windowOwner(w); owner != "" {
			return owner
		}
	}
	return ""
}

// IsFull returns true if every column's top cell is occupied
func (b *Board) IsFull() bool {
	for col := 0; col < BoardColumns; col++ {
		if b.Cells[col][BoardRows-1] == "" {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]ParticipantID, BoardColumns)
	for col := range cells {
		cells[col] = make([]ParticipantID, BoardRows)
		copy(cells[col], b.Cells[col])
	}
	return &Board{Cells: cells}
}

// Evaluate scores the board from forID's perspective. A completed win or
// loss saturates to +-1000; otherwise it is the sum over every length-4
// window of the window score: 0 for mixed windows, 1000/50/10/1 for 4/3/2/1
// own cells with the rest empty, mirrored negative for the opponent.
func (b *Board) Evaluate(forID, againstID ParticipantID) int {
	switch b.Winner() {
	case forID:
		return winScore
	case againstID:
		return -winScore
	}

	score := 0
	for _, w := range windows {
		score += b.windowScore(w, forID, againstID)
	}
	return score
}

// window is the four cell coordinates of one length-4 run
type window [4][2]int

// windows enumerates every length-4 run on the board, in deterministic
// order: horizontals, then verticals, then rising and falling diagonals.
var windows = buildWindows()

func buildWindows() []window {
	var ws []window
	// Horizontal
	for row := 0; row < BoardRows; row++ {
		for col := 0; col+3 < BoardColumns; col++ {
			ws = append(ws, window{{col, row}, {col + 1, row}, {col + 2, row}, {col + 3, row}})
		}
	}
	// Vertical
	for col := 0; col < BoardColumns; col++ {
		for row := 0; row+3 < BoardRows; row++ {
			ws = append(ws, window{{col, row}, {col, row + 1}, {col, row + 2}, {col, row + 3}})
		}
	}
	// Rising diagonal
	for col := 0; col+3 < BoardColumns; col++ {
		for row := 0; row+3 < BoardRows; row++ {
			ws = append(ws, window{{col, row}, {col + 1, row + 1}, {col + 2, row + 2}, {col + 3, row + 3}})
		}
	}
	// Falling diagonal
	for col := 0; col+3 < BoardColumns; col++ {
		for row := 3; row < BoardRows; row++ {
			ws = append(ws, window{{col, row}, {col + 1, row - 1}, {col + 2, row - 2}, {col + 3, row - 3}})
		}
	}
	return ws
}

// windowOwner returns the participant holding all four cells of the window,
// or "" if the window is not complete
func (b *Board) windowOwner(w window) ParticipantID {
	first := b.Cells[w[0][0]][w[0][1]]
	if first == "" {
		return ""
	}
	for _, cell := range w[1:] {
		if b.Cells[cell[0]][cell[1]] != first {
			return ""
		}
	}
	return first
}

func (b *Board) windowScore(w window, forID, againstID ParticipantID) int {
	mine, theirs := 0, 0
	for _, cell := range w {
		switch b.Cells[cell[0]][cell[1]] {
		case forID:
			mine++
		case againstID:
			theirs++
		}
	}
	if mine > 0 && theirs > 0 {
		return 0
	}
	if mine > 0 {
		return windowScores[mine]
	}
	return -windowScores[theirs]
}
