package engine

import (
	"errors"

	"checkers/game"
	"checkers/searcher"

	"golang.org/x/exp/rand"
)

var ErrNoMove = errors.New("no move available")

type Agent interface {
	// FindMove returns the agent's move for the position, with search metrics
	// when the agent collects them. The state is the agent's own copy.
	FindMove(state *game.GameState) (game.Move, searcher.SearchMetric, error)
}

type mctsAgent struct {
	mcts *searcher.MCTS
}

// NewMCTSAgent plays the most visited move of a fresh search every turn.
func NewMCTSAgent(mcts *searcher.MCTS) Agent {
	return mctsAgent{mcts: mcts}
}

func (a mctsAgent) FindMove(state *game.GameState) (game.Move, searcher.SearchMetric, error) {
	move, ok, metric := a.mcts.Search(state)
	if !ok {
		return nil, metric, ErrNoMove
	}
	return move, metric, nil
}

type randomAgent struct {
	rand *rand.Rand
}

// NewRandomAgent plays a uniformly random legal move, as a baseline opponent.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rand: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.GameState) (game.Move, searcher.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, searcher.SearchMetric{}, ErrNoMove
	}
	return moves[a.rand.Intn(len(moves))], searcher.SearchMetric{}, nil
}
