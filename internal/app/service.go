package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/tictactoe-minimax/internal/domain"
	"github.com/jaminalder/tictactoe-minimax/internal/logging"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// Mover picks the computer's cell for a board after moveIndex moves.
type Mover interface {
	ComputeBestMove(b domain.Board, moveIndex int) (int, error)
}

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	Game    domain.Game
	Human   string
	LastAI  int
	Created time.Time
	Updated time.Time
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// trySend reports false when the subscriber is closed or its buffer is full.
func (s *subscriber) trySend(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- b:
		return true
	default:
		return false
	}
}

// Service manages games against the computer and their subscribers.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	engine Mover
	log    *slog.Logger
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService(engine Mover, log *slog.Logger) *Service {
	return NewServiceWithRenderer(engine, log, nil)
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(engine Mover, log *slog.Logger, renderer func(GameState) []byte) *Service {
	if renderer == nil {
		renderer = func(gs GameState) []byte { return nil }
	}
	return &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
		engine: engine,
		log:    logging.OrDiscard(log),
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game. When the computer moves
// first its opening move is already on the board.
func (s *Service) CreateGame(first domain.Cell) (*GameState, error) {
	g, err := domain.New(first)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	gs := &GameState{ID: uuid.NewString(), Game: g, LastAI: -1, Created: now, Updated: now}
	// not registered yet, so the opening search runs unlocked
	if first == domain.Computer {
		if err := s.computerMove(gs); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[gs.ID] = gs
	s.log.Info("game created", "id", gs.ID, "first", first.String())
	cp := *gs
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := *gs
	return &cp, true
}

// Join gives the human seat to the player if it is free or already theirs;
// anyone else gets Empty and watches.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return domain.Empty, nil, ErrNotFound
	}
	side := domain.Empty
	if gs.Human == "" || gs.Human == playerID {
		gs.Human = playerID
		side = domain.Human
	}
	gs.Updated = time.Now()
	cp := *gs
	return side, &cp, nil
}

// Play applies the human's move, answers with the computer's move unless the
// game ended, and broadcasts the result.
func (s *Service) Play(id, playerID string, r, c int) (*GameState, error) {
	var toDrop []*subscriber

	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if gs.Human == "" || gs.Human != playerID {
		s.mu.Unlock()
		return nil, ErrNotAPlayer
	}
	if !gs.Game.Over && gs.Game.Turn != domain.Human {
		s.mu.Unlock()
		return nil, ErrNotYourTurn
	}
	if err := gs.Game.Play(r, c); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.log.Info("human moved", "id", id, "cell", domain.Index(r, c)+1)
	if !gs.Game.Over {
		if err := s.computerMove(gs); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	gs.Updated = time.Now()
	if gs.Game.Over {
		s.log.Info("game over", "id", id, "outcome", gs.Game.Outcome.String(), "moves", gs.Game.Moves)
	}

	cp := *gs
	subs := s.copySubsLocked(id)
	payload := s.render(cp)
	s.mu.Unlock()

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		if !sub.trySend(payload) {
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
		s.log.Debug("dropped slow subscribers", "id", id, "count", len(toDrop))
	}
	return &cp, nil
}

// computerMove plays the engine's answer on gs. Callers hold s.mu for
// registered games.
func (s *Service) computerMove(gs *GameState) error {
	cell, err := s.engine.ComputeBestMove(gs.Game.Board, gs.Game.Moves)
	if err != nil {
		return fmt.Errorf("computer move: %w", err)
	}
	if err := gs.Game.PlayIndex(cell); err != nil {
		return fmt.Errorf("computer move %d: %w", cell, err)
	}
	gs.LastAI = cell
	s.log.Info("computer moved", "id", gs.ID, "cell", cell+1)
	return nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
