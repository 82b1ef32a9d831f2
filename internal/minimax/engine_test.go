package minimax

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jaminalder/tictactoe-minimax/internal/domain"
)

func TestEngineComputeBestMoveLogs(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	b := parse(t, "OO*XX****")
	cell, err := e.ComputeBestMove(b, 4)
	if err != nil || cell != 2 {
		t.Fatalf("ComputeBestMove = %d, %v; want 2", cell, err)
	}
	out := buf.String()
	if !strings.Contains(out, "search done") || !strings.Contains(out, "cell=2") {
		t.Fatalf("expected search log, got %q", out)
	}
}

func TestEngineRefusesFullBoard(t *testing.T) {
	e := NewEngine(nil)
	if _, err := e.ComputeBestMove(parse(t, "OXOXOXXOX"), 9); !errors.Is(err, ErrNoMoves) {
		t.Fatalf("expected ErrNoMoves, got %v", err)
	}
}

func TestEngineAnalyzeMatchesBestMove(t *testing.T) {
	e := NewEngine(nil)
	b := domain.Board{4: domain.Human}
	a, err := e.Analyze(b, 1)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want, _ := BestMove(b, 1)
	if a.Cell != want || a.Nodes == 0 {
		t.Fatalf("Analyze cell %d nodes %d, BestMove %d", a.Cell, a.Nodes, want)
	}
	if a.Scores[4] != Occupied {
		t.Fatalf("centre is taken, got score %d", a.Scores[4])
	}
}
