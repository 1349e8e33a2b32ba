package engine

import (
	"errors"
	"fmt"
	"time"

	"checkers/game"
	"checkers/searcher"

	"github.com/rs/zerolog/log"
)

var ErrGameOver = errors.New("game is over")

type MoveRecord struct {
	Step   int
	Player game.Color
	Move   game.Move
	Hash   game.StateHash // Hash of the position after the move
	Metric searcher.SearchMetric
}

type Result struct {
	Winner    game.Color
	Decided   bool // False when the turn limit ended the game
	Turns     int
	StartTime time.Time
	EndTime   time.Time
	Moves     []MoveRecord
}

// Session runs one game between two agents. It owns the game state; agents
// only ever receive copies.
type Session struct {
	State    *game.GameState
	agents   [2]Agent // Indexed by color
	maxTurns int
	history  []MoveRecord
	observer func(MoveRecord, *game.GameState)
}

func NewSession(black, white Agent) *Session {
	if black == nil || white == nil {
		panic("session needs an agent for both colors")
	}
	s := &Session{
		State:    game.NewGameState(),
		maxTurns: MaxTurns,
	}
	s.agents[game.Black] = black
	s.agents[game.White] = white
	return s
}

func (s *Session) WithMaxTurns(turns int) *Session {
	if turns > 0 {
		s.maxTurns = turns
	}
	return s
}

// OnMove registers a callback invoked after every applied move.
func (s *Session) OnMove(observer func(MoveRecord, *game.GameState)) *Session {
	s.observer = observer
	return s
}

func (s *Session) History() []MoveRecord {
	return s.history
}

// Step asks the agent of the side to move for a move and applies it.
func (s *Session) Step() (MoveRecord, error) {
	if _, over := s.State.Winner(); over {
		return MoveRecord{}, ErrGameOver
	}

	player := s.State.Player
	move, metric, err := s.agents[player].FindMove(s.State.Copy())
	if err != nil {
		return MoveRecord{}, fmt.Errorf("agent for %s: %w", player, err)
	}
	if err := s.State.Play(move); err != nil {
		return MoveRecord{}, fmt.Errorf("agent for %s: %w", player, err)
	}

	record := MoveRecord{
		Step:   len(s.history) + 1,
		Player: player,
		Move:   move,
		Hash:   s.State.Hash(),
		Metric: metric,
	}
	s.history = append(s.history, record)
	log.Info().Msgf("turn %d: %s played %s", record.Step, player, move)

	if s.observer != nil {
		s.observer(record, s.State)
	}
	return record, nil
}

// Run executes the game loop until a winner is found or the turn limit is
// reached.
func (s *Session) Run() (Result, error) {
	result := Result{StartTime: time.Now()}
	log.Info().Msgf("%s is starting", s.State.Player)

	for len(s.history) < s.maxTurns {
		if _, over := s.State.Winner(); over {
			break
		}
		if _, err := s.Step(); err != nil {
			return result, err
		}
	}

	result.Winner, result.Decided = s.State.Winner()
	result.Turns = len(s.history)
	result.EndTime = time.Now()
	result.Moves = s.history

	if result.Decided {
		log.Info().Msgf("game over after %d turns, winner: %s", result.Turns, result.Winner)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", result.Turns)
	}
	return result, nil
}
