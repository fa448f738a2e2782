package searcher

import (
	"battler/game"
	"fmt"

	"golang.org/x/exp/rand"
)

// node is a search tree node. A parent owns its children; the tree is
// discarded once a move is chosen.
type node struct {
	state    *game.State
	move     game.Move // Move that produced state, nil at the root
	parent   *node
	children []*node
	visits   int
	score    float64 // Cumulative rollout score
}

func newNode(parent *node, move game.Move, state *game.State) *node {
	return &node{
		state:  state,
		move:   move,
		parent: parent,
	}
}

func (n *node) average() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.score / float64(n.visits)
}

// selectChild returns the child with the highest UCT value. Ties go to the
// child with fewer visits, then to the earlier child.
func (n *node) selectChild(cSquared float64) *node {
	if len(n.children) == 0 {
		panic("cannot select from a node without children")
	}
	if n.visits == 0 {
		return n.children[0]
	}

	policy := newUCT(cSquared, float64(n.visits))
	best := n.children[0]
	bestScore := policy.score(best)
	for _, child := range n.children[1:] {
		s := policy.score(child)
		if s > bestScore || (s == bestScore && child.visits < best.visits) {
			best = child
			bestScore = s
		}
	}
	return best
}

// expand attaches one child per legal move and returns how many were added.
// Terminal and already expanded nodes are left alone.
func (n *node) expand(rng *rand.Rand) int {
	if len(n.children) > 0 || n.state.IsTerminal() {
		return 0
	}

	moves := n.state.AvailableActions()
	if len(moves) == 0 {
		panic(fmt.Sprintf("state %s has no legal moves", n.state.ID))
	}

	n.children = make([]*node, 0, len(moves))
	for _, move := range moves {
		next, err := n.state.Apply(move, rng)
		if err != nil {
			panic(fmt.Sprintf("applying legal move %v: %v", move, err))
		}
		n.children = append(n.children, newNode(n, move, next))
	}
	return len(n.children)
}

// backup adds a rollout score to the node and returns its parent.
func (n *node) backup(score float64) *node {
	n.visits++
	n.score += score
	return n.parent
}
