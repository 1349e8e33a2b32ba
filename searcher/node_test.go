package searcher

import (
	"testing"

	"checkers/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestTree(state *game.GameState) *tree {
	return newTree(state, rand.New(rand.NewSource(1)), MaxCutoff)
}

// forcedCapture has exactly one legal move for Black: c5 takes e6.
func forcedCapture() *game.GameState {
	gs := &game.GameState{Player: game.Black}
	gs.Board.Set(game.Coord{Row: 4, Col: 3}, game.NewMan(game.Black))
	gs.Board.Set(game.Coord{Row: 0, Col: 1}, game.NewMan(game.Black))
	gs.Board.Set(game.Coord{Row: 5, Col: 4}, game.NewMan(game.White))
	gs.Board.Set(game.Coord{Row: 7, Col: 0}, game.NewMan(game.White))
	return gs
}

func TestNodeSelect(t *testing.T) {
	t.Run("selecting the child with max UCT value", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1, 2}, visits: 2},
			{parent: root, visits: 1, score: 0},
			{parent: root, visits: 1, score: 1},
		}}

		require.Equal(t, 2, tr.selectChild(root))
	})

	t.Run("selecting the first unvisited child", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1, 2, 3}, visits: 1},
			{parent: root, visits: 1, score: 1},
			{parent: root},
			{parent: root},
		}}

		require.Equal(t, 2, tr.selectChild(root), "Unvisited children score +Inf, first one wins")
	})

	t.Run("breaking ties by child order", func(t *testing.T) {
		tr := &tree{nodes: []node{
			{parent: noParent, children: []int{1, 2}, visits: 4},
			{parent: root, visits: 2, score: 1},
			{parent: root, visits: 2, score: 1},
		}}

		require.Equal(t, 1, tr.selectChild(root))
	})

	t.Run("panics on a childless node", func(t *testing.T) {
		tr := newTestTree(game.NewGameState())

		require.Panics(t, func() { tr.selectChild(root) })
	})
}

func TestNodeExpand(t *testing.T) {
	t.Run("expanding every untried move once", func(t *testing.T) {
		state := game.NewGameState()
		tr := newTestTree(state)
		legal := state.LegalMoves()

		var expanded []game.Move
		for !tr.nodes[root].fullyExpanded() {
			child := tr.expand(root)
			require.Equal(t, root, tr.nodes[child].parent)
			expanded = append(expanded, tr.nodes[child].move)
		}

		require.ElementsMatch(t, legal, expanded)
		require.Len(t, tr.nodes[root].children, len(legal))
		require.Panics(t, func() { tr.expand(root) }, "Fully expanded node cannot expand")
	})

	t.Run("child state is the parent state after the move", func(t *testing.T) {
		state := game.NewGameState()
		tr := newTestTree(state)

		child := tr.expand(root)

		expected := state.Copy()
		require.NoError(t, expected.Play(tr.nodes[child].move))
		require.Equal(t, expected, tr.nodes[child].state)
		require.Equal(t, game.NewGameState(), state, "Search should not mutate the caller's state")
		require.Equal(t, game.Black, tr.nodes[child].mover())
	})

	t.Run("terminal positions have nothing to expand", func(t *testing.T) {
		gs := &game.GameState{Player: game.White}
		gs.Board.Set(game.Coord{Row: 3, Col: 2}, game.NewMan(game.Black))

		tr := newTestTree(gs)

		require.True(t, tr.nodes[root].fullyExpanded())
		_, ok := tr.bestMove()
		require.False(t, ok)
	})
}

func TestNodeSimulate(t *testing.T) {
	t.Run("rollout from a finished game returns its winner", func(t *testing.T) {
		gs := &game.GameState{Player: game.White}
		gs.Board.Set(game.Coord{Row: 3, Col: 2}, game.NewMan(game.Black))
		tr := newTestTree(gs)

		winner, decided := tr.simulate(root)

		require.True(t, decided)
		require.Equal(t, game.Black, winner)
	})

	t.Run("rollout stops at the cutoff with a draw", func(t *testing.T) {
		tr := newTree(game.NewGameState(), rand.New(rand.NewSource(1)), 1)

		_, decided := tr.simulate(root)

		require.False(t, decided, "One ply cannot finish the opening position")
	})

	t.Run("rollout leaves the node state untouched", func(t *testing.T) {
		tr := newTestTree(game.NewGameState())

		tr.simulate(root)

		require.Equal(t, game.NewGameState(), tr.nodes[root].state)
	})
}

func TestNodeBackpropagate(t *testing.T) {
	t.Run("crediting the side that moved into each node", func(t *testing.T) {
		tr := newTestTree(game.NewGameState())
		child := tr.expand(root)      // Black moved into child
		grandChild := tr.expand(child) // White moved into grandChild

		tr.backpropagate(grandChild, game.White, true)

		require.Equal(t, 1, tr.nodes[grandChild].visits)
		require.Equal(t, Win, tr.nodes[grandChild].score)
		require.Equal(t, 1, tr.nodes[child].visits)
		require.Equal(t, Loss, tr.nodes[child].score)
		require.Equal(t, 1, tr.nodes[root].visits)
		require.Equal(t, Win, tr.nodes[root].score, "Root is credited to the side before Black")
	})

	t.Run("crediting half a point on draws", func(t *testing.T) {
		tr := newTestTree(game.NewGameState())
		child := tr.expand(root)

		tr.backpropagate(child, game.Black, false)

		require.Equal(t, Draw, tr.nodes[child].score)
		require.Equal(t, Draw, tr.nodes[root].score)
	})
}

func TestEpisode(t *testing.T) {
	tr := newTestTree(game.NewGameState())

	for i := 0; i < 30; i++ {
		tr.episode()
	}

	require.Equal(t, 30, tr.nodes[root].visits)
	total := 0
	for _, c := range tr.nodes[root].children {
		total += tr.nodes[c].visits
	}
	require.Equal(t, 30, total, "Every episode passes through one root child")
	require.True(t, tr.nodes[root].fullyExpanded(), "Seven moves need seven episodes to expand")
}

func TestBestMove(t *testing.T) {
	tr := &tree{nodes: []node{
		{parent: noParent, children: []int{1, 2, 3}, visits: 9},
		{parent: root, move: game.Move{{Row: 2, Col: 1}, {Row: 3, Col: 0}}, visits: 2, score: 2},
		{parent: root, move: game.Move{{Row: 2, Col: 1}, {Row: 3, Col: 2}}, visits: 5, score: 1},
		{parent: root, move: game.Move{{Row: 2, Col: 3}, {Row: 3, Col: 4}}, visits: 2, score: 0},
	}}

	move, ok := tr.bestMove()

	require.True(t, ok)
	require.Equal(t, game.Move{{Row: 2, Col: 1}, {Row: 3, Col: 2}}, move, "Most visits wins over best win rate")
}
