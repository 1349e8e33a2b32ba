package searcher

import (
	"math"
	"time"

	"checkers/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant C = sqrt(2), squared

const (
	Win  = 1.0 // Reward for the side that moved into a node and won the rollout
	Draw = 0.5 // Reward when the rollout hits the cutoff without a winner
	Loss = 0.0
)

const (
	DefaultDuration = time.Second
	DefaultEpisodes = 1000
	MaxCutoff       = 200 // Rollout depth in plies before declaring a draw
)

// ChooseMove runs a fresh search bounded by whichever of timeLimit and
// iterationLimit runs out first. Non-positive limits fall back to the
// defaults. It reports false only if the position has no legal move.
func ChooseMove(state *game.GameState, timeLimit time.Duration, iterationLimit int) (game.Move, bool) {
	m := NewMCTS(WithDuration(timeLimit), WithEpisodes(iterationLimit))
	return m.FindMove(state)
}

// reward scores a rollout outcome for the side that moved into a node.
func reward(mover game.Color, winner game.Color, decided bool) float64 {
	if !decided {
		return Draw
	}
	if mover == winner {
		return Win
	}
	return Loss
}

// uct holds the parent-dependent part of the UCT formula.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
