// Package console plays the game in a terminal: the human types cell numbers
// 1 to 9 and the computer answers with the minimax engine.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe-minimax/internal/domain"
)

// ErrAbandoned is returned when input ends in the middle of a game.
var ErrAbandoned = errors.New("game abandoned")

// Mover picks the computer's cell for a board after moveIndex moves.
type Mover interface {
	ComputeBestMove(b domain.Board, moveIndex int) (int, error)
}

// Session is one run of the console game, possibly several matches long.
type Session struct {
	in     *bufio.Scanner
	out    *termenv.Output
	engine Mover
}

// NewSession reads whitespace separated answers from in and writes to out.
func NewSession(in io.Reader, out *termenv.Output, engine Mover) *Session {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Session{in: sc, out: out, engine: engine}
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// next returns the next answer, or false once input is exhausted.
func (s *Session) next() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// Run plays matches until the player declines another one or input ends.
func (s *Session) Run() error {
	s.printf("\n-------------------------------------------------------------------\n")
	s.printf("\t\t\t Tic-Tac-Toe\n")
	s.printf("-------------------------------------------------------------------\n")
	for {
		s.printf("Do you want to start first? (y/n): ")
		choice, ok := s.next()
		if !ok {
			return nil
		}
		switch strings.ToLower(choice) {
		case "y":
			if err := s.Play(domain.Human); err != nil {
				return err
			}
		case "n":
			if err := s.Play(domain.Computer); err != nil {
				return err
			}
		default:
			s.printf("Invalid choice\n")
		}

		s.printf("\nDo you want to quit (y/n): ")
		again, ok := s.next()
		if !ok || strings.ToLower(again) != "n" {
			return nil
		}
	}
}

// Play runs one match with first to move.
func (s *Session) Play(first domain.Cell) error {
	g, err := domain.New(first)
	if err != nil {
		return err
	}
	s.showInstructions()
	for !g.Over {
		if g.Turn == domain.Computer {
			cell, err := s.engine.ComputeBestMove(g.Board, g.Moves)
			if err != nil {
				return fmt.Errorf("computer move: %w", err)
			}
			if err := g.PlayIndex(cell); err != nil {
				return fmt.Errorf("computer move %d: %w", cell+1, err)
			}
			s.printf("COMPUTER has put an %s in cell %d\n", s.mark(domain.Computer), cell+1)
			s.showBoard(g.Board)
			continue
		}
		if err := s.humanTurn(&g); err != nil {
			return err
		}
	}
	s.declare(g.Outcome)
	return nil
}

func (s *Session) humanTurn(g *domain.Game) error {
	free := domain.EmptyCells(g.Board)
	positions := make([]string, len(free))
	for i, c := range free {
		positions[i] = strconv.Itoa(c + 1)
	}
	s.printf("You can insert in the following positions: %s \n", strings.Join(positions, " "))
	s.printf("Enter the position: ")
	answer, ok := s.next()
	if !ok {
		return ErrAbandoned
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		s.printf("Invalid position\n")
		return nil
	}
	switch err := g.PlayIndex(n - 1); {
	case errors.Is(err, domain.ErrOccupied):
		s.printf("\nPosition is occupied, select another place\n")
	case errors.Is(err, domain.ErrOutOfBounds):
		s.printf("Invalid position\n")
	case err != nil:
		return err
	default:
		s.printf("\nHUMAN has put an %s in cell %d\n", s.mark(domain.Human), n)
		s.showBoard(g.Board)
	}
	return nil
}

func (s *Session) declare(o domain.Outcome) {
	switch o {
	case domain.Draw:
		s.printf("It's a draw\n")
	case domain.ComputerWins:
		s.printf("COMPUTER has won\n")
	case domain.HumanWins:
		s.printf("HUMAN has won\n")
	}
}

// mark renders a cell, coloured when the terminal supports it.
func (s *Session) mark(c domain.Cell) string {
	st := s.out.String(c.String())
	switch c {
	case domain.Computer:
		return st.Foreground(s.out.Color("1")).Bold().String()
	case domain.Human:
		return st.Foreground(s.out.Color("4")).Bold().String()
	}
	return st.Faint().String()
}

func (s *Session) showBoard(b domain.Board) {
	for r := 0; r < domain.Size; r++ {
		if r > 0 {
			s.printf("\t\t\t-----------\n")
		}
		i := domain.Index(r, 0)
		s.printf("\t\t\t %s | %s | %s\n", s.mark(b[i]), s.mark(b[i+1]), s.mark(b[i+2]))
	}
}

func (s *Session) showInstructions() {
	s.printf("\nChoose a cell numbered from 1 to 9 as below and play\n")
	s.printf("\t\t\t 1 | 2 | 3 \n")
	s.printf("\t\t\t-----------\n")
	s.printf("\t\t\t 4 | 5 | 6 \n")
	s.printf("\t\t\t-----------\n")
	s.printf("\t\t\t 7 | 8 | 9 \n")
}
