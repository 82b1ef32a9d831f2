// Package minimax picks the computer's move by exhaustive adversarial search.
//
// The computer is the maximizer and the human the minimizer. A won position
// scores +10 or -10 regardless of how deep it was reached, a drawn one 0.
package minimax

import (
	"errors"

	"github.com/jaminalder/tictactoe-minimax/internal/domain"
)

const (
	WinScore  = 10
	LossScore = -WinScore
	DrawScore = 0

	// sentinels outside the score range
	minScore = -999
	maxScore = 999
)

// Errors returned when BestMove is called on a board with nothing to search.
var (
	ErrNoMoves  = errors.New("no empty cell")
	ErrGameOver = errors.New("position already won")
)

// Evaluate scores b with the side to move given by maximizing (true when the
// computer moves next). depth counts the marks already on the board and bounds
// the recursion at domain.Cells.
//
// Each child position is a copy of b, so the caller's board is never touched.
func Evaluate(b domain.Board, depth int, maximizing bool) int {
	return evaluate(b, depth, maximizing, nil)
}

func evaluate(b domain.Board, depth int, maximizing bool, nodes *int) int {
	if nodes != nil {
		*nodes++
	}
	// the side that moved last made the line
	if domain.IsWin(b) {
		if maximizing {
			return LossScore
		}
		return WinScore
	}
	if depth >= domain.Cells || domain.IsFull(b) {
		return DrawScore
	}

	mark, best := domain.Human, maxScore
	if maximizing {
		mark, best = domain.Computer, minScore
	}
	for i, c := range b {
		if c != domain.Empty {
			continue
		}
		child := b
		child[i] = mark
		score := evaluate(child, depth+1, !maximizing, nodes)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}

// BestMove returns the cell the computer should play on b. moveIndex is the
// number of moves already made. Cells are tried in row-major order and the
// first one reaching the highest score wins the tie.
func BestMove(b domain.Board, moveIndex int) (int, error) {
	a, err := analyze(b, moveIndex)
	if err != nil {
		return -1, err
	}
	return a.Cell, nil
}

// Analysis describes one move decision.
type Analysis struct {
	Cell  int
	Score int
	// Scores holds the score of every candidate cell, Occupied elsewhere.
	Scores [domain.Cells]int
	// Nodes is the number of positions visited.
	Nodes int
}

// Occupied is the value reported in Analysis.Scores for cells that were not
// candidates.
const Occupied = minScore

func analyze(b domain.Board, moveIndex int) (Analysis, error) {
	a := Analysis{Cell: -1, Score: minScore}
	if domain.IsWin(b) {
		return a, ErrGameOver
	}
	if domain.IsFull(b) {
		return a, ErrNoMoves
	}
	for i, c := range b {
		a.Scores[i] = Occupied
		if c != domain.Empty {
			continue
		}
		child := b
		child[i] = domain.Computer
		score := evaluate(child, moveIndex+1, false, &a.Nodes)
		a.Scores[i] = score
		if score > a.Score {
			a.Score = score
			a.Cell = i
		}
	}
	return a, nil
}
