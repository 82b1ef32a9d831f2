package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe-minimax/internal/domain"
	"github.com/jaminalder/tictactoe-minimax/internal/minimax"
)

// firstFree plays the first empty cell.
type firstFree struct{}

func (firstFree) ComputeBestMove(b domain.Board, _ int) (int, error) {
	return domain.EmptyCells(b)[0], nil
}

type brokenMover struct{}

func (brokenMover) ComputeBestMove(domain.Board, int) (int, error) {
	return -1, minimax.ErrNoMoves
}

func run(t *testing.T, input string, engine Mover) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	err := NewSession(strings.NewReader(input), out, engine).Run()
	return buf.String(), err
}

func TestComputerNeverLosesAgainstScriptedHuman(t *testing.T) {
	tokens := strings.Repeat("1 2 3 4 5 6 7 8 9 ", 2)
	out, err := run(t, "y "+tokens, minimax.NewEngine(nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "HUMAN has put an X in cell 1") {
		t.Fatalf("expected first human move, got:\n%s", out)
	}
	if !strings.Contains(out, "COMPUTER has put an O in cell") {
		t.Fatalf("expected a computer move, got:\n%s", out)
	}
	if strings.Contains(out, "HUMAN has won") {
		t.Fatalf("computer lost:\n%s", out)
	}
	if !strings.Contains(out, "COMPUTER has won") && !strings.Contains(out, "It's a draw") {
		t.Fatalf("expected a result, got:\n%s", out)
	}
}

func TestComputerOpensInFirstCell(t *testing.T) {
	out, err := run(t, "n", minimax.NewEngine(nil))
	if !errors.Is(err, ErrAbandoned) {
		t.Fatalf("expected ErrAbandoned when input ends mid-game, got %v", err)
	}
	if !strings.Contains(out, "COMPUTER has put an O in cell 1\n") {
		t.Fatalf("expected computer opening in cell 1, got:\n%s", out)
	}
	if !strings.Contains(out, "\t\t\t O | * | *\n") {
		t.Fatalf("expected rendered board, got:\n%s", out)
	}
	if !strings.Contains(out, "You can insert in the following positions: 2 3 4 5 6 7 8 9 \n") {
		t.Fatalf("expected free positions, got:\n%s", out)
	}
}

func TestInvalidPositionsArePromptedAgain(t *testing.T) {
	out, err := run(t, "y abc 0 10 5 5", minimax.NewEngine(nil))
	if !errors.Is(err, ErrAbandoned) {
		t.Fatalf("expected ErrAbandoned, got %v", err)
	}
	if got := strings.Count(out, "Invalid position\n"); got != 3 {
		t.Fatalf("expected 3 invalid positions, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "HUMAN has put an X in cell 5") {
		t.Fatalf("expected centre move, got:\n%s", out)
	}
	if !strings.Contains(out, "Position is occupied, select another place") {
		t.Fatalf("expected occupied message, got:\n%s", out)
	}
}

func TestHumanCanWinAgainstWeakMover(t *testing.T) {
	out, err := run(t, "y 3 5 7 y", firstFree{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasSuffix(out, "HUMAN has won\n\nDo you want to quit (y/n): ") {
		t.Fatalf("expected human win, got:\n%s", out)
	}
}

func TestInvalidChoiceAndReplay(t *testing.T) {
	out, err := run(t, "q n", minimax.NewEngine(nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Invalid choice") {
		t.Fatalf("expected invalid choice, got:\n%s", out)
	}
	if got := strings.Count(out, "Do you want to start first? (y/n): "); got != 2 {
		t.Fatalf("expected a second round after answering n, got %d prompts", got)
	}
}

func TestEngineErrorStopsSession(t *testing.T) {
	_, err := run(t, "n", brokenMover{})
	if !errors.Is(err, minimax.ErrNoMoves) {
		t.Fatalf("expected engine error, got %v", err)
	}
}

func TestColouredMarks(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))
	s := NewSession(strings.NewReader(""), out, firstFree{})
	s.showBoard(domain.Board{0: domain.Computer, 4: domain.Human})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI sequences, got %q", buf.String())
	}
}
