package app

import "github.com/jaminalder/tictactoe-minimax/internal/domain"

// Snapshot is the JSON view of a game sent to API and WebSocket clients.
type Snapshot struct {
	ID      string   `json:"id"`
	Board   []string `json:"board"`
	Turn    string   `json:"turn"`
	Outcome string   `json:"outcome"`
	Over    bool     `json:"over"`
	Moves   int      `json:"moves"`
	// LastComputerMove is the 1-based cell of the computer's last move, 0 if none.
	LastComputerMove int `json:"last_computer_move"`
}

func sideName(c domain.Cell) string {
	switch c {
	case domain.Computer:
		return "computer"
	case domain.Human:
		return "human"
	}
	return ""
}

// Snapshot returns the JSON view of gs.
func (gs GameState) Snapshot() Snapshot {
	board := make([]string, domain.Cells)
	for i, c := range gs.Game.Board {
		if c != domain.Empty {
			board[i] = c.String()
		}
	}
	turn := sideName(gs.Game.Turn)
	if gs.Game.Over {
		turn = ""
	}
	return Snapshot{
		ID:               gs.ID,
		Board:            board,
		Turn:             turn,
		Outcome:          gs.Game.Outcome.String(),
		Over:             gs.Game.Over,
		Moves:            gs.Game.Moves,
		LastComputerMove: gs.LastAI + 1,
	}
}
