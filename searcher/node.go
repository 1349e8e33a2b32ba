package searcher

import (
	"math"

	"checkers/game"

	"golang.org/x/exp/rand"
)

const (
	root     = 0  // Index of the root in the arena
	noParent = -1 // Parent index of the root
)

// node is one explored position. Children are owned through indices into
// the tree's arena; parent is a back-reference used only to backpropagate.
type node struct {
	state    *game.GameState
	parent   int
	move     game.Move // Move that produced this node from its parent
	children []int
	visits   int
	score    float64
	untried  []game.Move
}

func (n *node) fullyExpanded() bool {
	return len(n.untried) == 0
}

// mover is the side whose move led into this node.
func (n *node) mover() game.Color {
	return n.state.Player.Opponent()
}

// tree is the arena holding every node of one search. It is discarded with
// the search; callers only ever see the chosen move.
type tree struct {
	nodes  []node
	rand   *rand.Rand
	cutoff int
}

func newTree(state *game.GameState, rng *rand.Rand, cutoff int) *tree {
	t := &tree{rand: rng, cutoff: cutoff}
	t.add(noParent, nil, state.Copy())
	return t
}

func (t *tree) add(parent int, move game.Move, state *game.GameState) int {
	t.nodes = append(t.nodes, node{
		state:   state,
		parent:  parent,
		move:    move,
		untried: state.LegalMoves(), // Empty exactly when the side to move is stuck or has no pieces
	})
	id := len(t.nodes) - 1
	if parent != noParent {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

// selectChild picks the child with the highest UCT score. Unvisited children
// score +Inf and the first of them in child order wins, as does the first of
// equal finite scores.
func (t *tree) selectChild(id int) int {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		panic("cannot select from a node without children")
	}
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(CSquared, float64(n.visits))
	best := -1
	bestScore := math.Inf(-1)
	for _, c := range n.children {
		child := &t.nodes[c]
		if child.visits == 0 {
			return c
		}
		if score := policy.evaluate(child.score, float64(child.visits)); score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// expand removes a random untried move, plays it on a copy of the node's
// state and attaches the resulting child.
func (t *tree) expand(id int) int {
	n := &t.nodes[id]
	if n.fullyExpanded() {
		panic("cannot expand a fully expanded node")
	}
	i := t.rand.Intn(len(n.untried))
	move := n.untried[i]
	n.untried = append(n.untried[:i], n.untried[i+1:]...)

	next := n.state.Copy()
	next.Apply(move)
	return t.add(id, move, next)
}

// simulate plays uniformly random moves from a copy of the node's state
// until the game ends or the cutoff is reached. decided is false for a
// cutoff, which counts as a draw.
func (t *tree) simulate(id int) (winner game.Color, decided bool) {
	return rollout(t.nodes[id].state, t.cutoff, t.rand)
}

func rollout(state *game.GameState, cutoff int, rng *rand.Rand) (game.Color, bool) {
	state = state.Copy()
	for depth := 0; ; depth++ {
		// Same outcome as state.Winner(), without generating moves twice
		player, opponent := state.Player, state.Player.Opponent()
		if state.Board.Count(player) == 0 {
			return opponent, true
		}
		if state.Board.Count(opponent) == 0 {
			return player, true
		}
		moves := state.LegalMoves()
		if len(moves) == 0 {
			return opponent, true
		}
		if depth >= cutoff {
			return game.Black, false
		}
		state.Apply(moves[rng.Intn(len(moves))]) // Random rollout policy
	}
}

// backpropagate adds the rollout outcome to the node and all its ancestors,
// each scored from the side that moved into it.
func (t *tree) backpropagate(id int, winner game.Color, decided bool) {
	for id != noParent {
		n := &t.nodes[id]
		n.visits++
		n.score += reward(n.mover(), winner, decided)
		id = n.parent
	}
}

// bestMove returns the move of the most visited root child, the earliest
// one on ties.
func (t *tree) bestMove() (game.Move, bool) {
	r := &t.nodes[root]
	if len(r.children) == 0 {
		return nil, false
	}
	best := r.children[0]
	for _, c := range r.children[1:] {
		if t.nodes[c].visits > t.nodes[best].visits {
			best = c
		}
	}
	return t.nodes[best].move, true
}

// episode runs one selection, expansion, simulation and backpropagation
// pass from the root. It reports whether the rollout reached a winner.
func (t *tree) episode() bool {
	id := root
	for t.nodes[id].fullyExpanded() && len(t.nodes[id].children) > 0 {
		id = t.selectChild(id)
	}
	if !t.nodes[id].fullyExpanded() {
		id = t.expand(id)
	}
	winner, decided := t.simulate(id)
	t.backpropagate(id, winner, decided)
	return decided
}
