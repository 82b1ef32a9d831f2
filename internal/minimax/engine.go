package minimax

import (
	"log/slog"
	"time"

	"github.com/jaminalder/tictactoe-minimax/internal/domain"
	"github.com/jaminalder/tictactoe-minimax/internal/logging"
)

// Engine is the entry point used by the game front ends. It runs the search
// and logs each decision.
type Engine struct {
	log *slog.Logger
}

// NewEngine returns an engine logging to log; nil discards.
func NewEngine(log *slog.Logger) *Engine {
	return &Engine{log: logging.OrDiscard(log)}
}

// ComputeBestMove returns the computer's move on b after moveIndex moves.
func (e *Engine) ComputeBestMove(b domain.Board, moveIndex int) (int, error) {
	a, err := e.Analyze(b, moveIndex)
	if err != nil {
		return -1, err
	}
	return a.Cell, nil
}

// Analyze is ComputeBestMove with the per-cell scores and search size.
func (e *Engine) Analyze(b domain.Board, moveIndex int) (Analysis, error) {
	start := time.Now()
	a, err := analyze(b, moveIndex)
	if err != nil {
		e.log.Warn("search refused", "move_index", moveIndex, "err", err)
		return a, err
	}
	e.log.Debug("search done",
		"move_index", moveIndex,
		"cell", a.Cell,
		"score", a.Score,
		"nodes", a.Nodes,
		"took", time.Since(start),
	)
	return a, nil
}
