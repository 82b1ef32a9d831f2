package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	Computer
	Human
)

// Size is the side length of the board; Cells is the number of cells.
const (
	Size  = 3
	Cells = Size * Size
)

// String returns the mark drawn for the cell.
func (c Cell) String() string {
	switch c {
	case Computer:
		return "O"
	case Human:
		return "X"
	default:
		return "*"
	}
}

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Computer:
		return Human
	case Human:
		return Computer
	default:
		return Empty
	}
}

// Board is a fixed 3x3 board stored row-major.
type Board [Cells]Cell

// Outcome is the state of play derived from a board.
type Outcome uint8

const (
	InProgress Outcome = iota
	ComputerWins
	HumanWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case ComputerWins:
		return "computer wins"
	case HumanWins:
		return "human wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

var (
	rows  = [Size][3]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}
	cols  = [Size][3]int{{0, 3, 6}, {1, 4, 7}, {2, 5, 8}}
	diags = [2][3]int{{0, 4, 8}, {2, 4, 6}}
)

// Index maps a (row, column) pair to a cell index.
func Index(r, c int) int { return r*Size + c }

// RowCol maps a cell index to its (row, column) pair.
func RowCol(i int) (int, int) { return i / Size, i % Size }

func (b Board) uniform(ln [3]int) Cell {
	if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[1]] == b[ln[2]] {
		return b[ln[0]]
	}
	return Empty
}

func (b Board) firstWon(lines [][3]int) Cell {
	for _, ln := range lines {
		if w := b.uniform(ln); w != Empty {
			return w
		}
	}
	return Empty
}

// IsRowWin reports whether any row holds three identical marks.
func IsRowWin(b Board) bool { return b.firstWon(rows[:]) != Empty }

// IsColumnWin reports whether any column holds three identical marks.
func IsColumnWin(b Board) bool { return b.firstWon(cols[:]) != Empty }

// IsDiagonalWin reports whether either diagonal holds three identical marks.
func IsDiagonalWin(b Board) bool { return b.firstWon(diags[:]) != Empty }

// IsWin reports whether any of the 8 lines is won.
func IsWin(b Board) bool {
	return IsRowWin(b) || IsColumnWin(b) || IsDiagonalWin(b)
}

// IsGameOver is true iff a line is won. A full board without a line is not
// reported here; combine with IsFull for draws.
func IsGameOver(b Board) bool { return IsWin(b) }

// IsFull reports whether no empty cell remains.
func IsFull(b Board) bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Winner returns the mark owning a won line, or Empty.
func Winner(b Board) Cell {
	if w := b.firstWon(rows[:]); w != Empty {
		return w
	}
	if w := b.firstWon(cols[:]); w != Empty {
		return w
	}
	return b.firstWon(diags[:])
}

// OutcomeOf derives the outcome of a board. A won line takes precedence
// over a full board.
func OutcomeOf(b Board) Outcome {
	switch Winner(b) {
	case Computer:
		return ComputerWins
	case Human:
		return HumanWins
	}
	if IsFull(b) {
		return Draw
	}
	return InProgress
}

// EmptyCells lists the free cell indexes in row-major order.
func EmptyCells(b Board) []int {
	out := make([]int, 0, Cells)
	for i, c := range b {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of non-empty cells.
func Count(b Board) int {
	return Cells - len(EmptyCells(b))
}
