package domain

import "errors"

// Game holds the current state of a match between the human and the computer.
type Game struct {
	Board   Board
	Turn    Cell
	Outcome Outcome
	Over    bool
	Moves   int
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrGameOver    = errors.New("game over")
	ErrInvalidSide = errors.New("invalid side")
)

// New returns a new game with first to move.
func New(first Cell) (Game, error) {
	if first != Computer && first != Human {
		return Game{}, ErrInvalidSide
	}
	return Game{Turn: first}, nil
}

// Play attempts to play the current turn at row r, column c (0..2).
func (g *Game) Play(r, c int) error {
	if g.Over {
		return ErrGameOver
	}
	if r < 0 || r >= Size || c < 0 || c >= Size {
		return ErrOutOfBounds
	}
	return g.PlayIndex(Index(r, c))
}

// PlayIndex plays the current turn at cell i (0..8).
func (g *Game) PlayIndex(i int) error {
	if g.Over {
		return ErrGameOver
	}
	if i < 0 || i >= Cells {
		return ErrOutOfBounds
	}
	if g.Board[i] != Empty {
		return ErrOccupied
	}

	g.Board[i] = g.Turn
	g.Moves++

	g.Outcome = OutcomeOf(g.Board)
	if g.Outcome != InProgress {
		g.Over = true
		return nil
	}

	g.Turn = g.Turn.Opponent()
	return nil
}

// Winner returns the winning side, or Empty while in progress or on a draw.
func (g Game) Winner() Cell {
	switch g.Outcome {
	case ComputerWins:
		return Computer
	case HumanWins:
		return Human
	}
	return Empty
}
