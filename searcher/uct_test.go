package searcher

import (
	"math"
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(CSquared, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(CSquared, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + math.Sqrt2*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + C*sqrt(ln(N)/n) with C = sqrt(2)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := newUCT(CSquared, 100).evaluate(5.0, 10)
		score2 := newUCT(CSquared, 1000).evaluate(5.0, 10)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(5.0, 10), policy.evaluate(5.0, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(10.0, 10), policy.evaluate(5.0, 10),
			"More rewards should increase exploitation term")
	})
}

func TestUCTWithRolloutScores(t *testing.T) {
	t.Run("cutoff draws score like an even win record", func(t *testing.T) {
		policy := newUCT(CSquared, 8)

		drawn := policy.evaluate(4*Draw, 4)
		split := policy.evaluate(2*Win+2*Loss, 4)

		require.Equal(t, split, drawn)
		require.InDelta(t, 0.5+math.Sqrt(2*math.Log(8)/4), drawn, 1e-9)
	})

	t.Run("selection prefers the child that kept winning", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1, 2}, visits: 8},
			{parent: root, visits: 4, score: 4 * Draw},
			{parent: root, visits: 4, score: 3*Win + Draw},
		}}

		require.Equal(t, 2, tr.selectChild(root))
	})
}

func TestReward(t *testing.T) {
	require.Equal(t, Win, reward(game.Black, game.Black, true))
	require.Equal(t, Loss, reward(game.Black, game.White, true))
	require.Equal(t, Draw, reward(game.Black, game.White, false))
	require.Equal(t, Draw, reward(game.White, game.Black, false))
}
