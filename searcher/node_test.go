package searcher

import (
	"battler/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestState() *game.State {
	return game.NewGameState(game.DefaultCatalog(), game.DefaultRules(), game.DefaultWeights())
}

func withUnitInHand(t *testing.T, s *game.State, name string) *game.Unit {
	template, err := s.Catalog.Unit(name)
	require.NoError(t, err)
	u := s.NewUnit(template, s.CurrentTurn)
	require.NoError(t, s.AddToHand(u))
	return u
}

func TestNodeSelectChild(t *testing.T) {
	t.Run("equal visits prefer the higher average", func(t *testing.T) {
		low := &node{visits: 3, score: 3}
		high := &node{visits: 3, score: 9}
		parent := &node{visits: 6, children: []*node{low, high}}

		require.Same(t, high, parent.selectChild(2.0))
	})

	t.Run("equal averages prefer fewer visits", func(t *testing.T) {
		many := &node{visits: 8, score: 16}
		few := &node{visits: 2, score: 4}
		parent := &node{visits: 10, children: []*node{many, few}}

		require.Same(t, few, parent.selectChild(2.0))
	})

	t.Run("equal averages prefer fewer visits without exploration", func(t *testing.T) {
		many := &node{visits: 8, score: 16}
		few := &node{visits: 2, score: 4}
		parent := &node{visits: 10, children: []*node{many, few}}

		require.Same(t, few, parent.selectChild(0))
	})

	t.Run("unvisited children come first in order", func(t *testing.T) {
		visited := &node{visits: 5, score: 100}
		first := &node{}
		second := &node{}
		parent := &node{visits: 5, children: []*node{visited, first, second}}

		require.Same(t, first, parent.selectChild(2.0))
	})

	t.Run("panics without children", func(t *testing.T) {
		require.Panics(t, func() {
			(&node{visits: 1}).selectChild(2.0)
		})
	})
}

func TestNodeExpand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("one child per legal move", func(t *testing.T) {
		s := newTestState()
		withUnitInHand(t, s, "Footman")
		root := newNode(nil, nil, s)

		added := root.expand(rng)

		moves := s.AvailableActions()
		require.Equal(t, len(moves), added)
		for i, child := range root.children {
			require.Equal(t, moves[i], child.move)
			require.Same(t, root, child.parent)
			require.Zero(t, child.visits)
			require.NotSame(t, s, child.state, "Children should own their own state")
		}
	})

	t.Run("expanding twice is a no-op", func(t *testing.T) {
		root := newNode(nil, nil, newTestState())
		require.Equal(t, 1, root.expand(rng))
		require.Zero(t, root.expand(rng))
		require.Len(t, root.children, 1)
	})

	t.Run("terminal node is not expanded", func(t *testing.T) {
		s := newTestState()
		s.Scale = game.WinningScale
		root := newNode(nil, nil, s)

		require.Zero(t, root.expand(rng))
		require.Empty(t, root.children)
	})
}

func TestNodeBackup(t *testing.T) {
	t.Run("score reaches every ancestor", func(t *testing.T) {
		root := &node{}
		child := &node{parent: root}
		grandChild := &node{parent: child}

		backup(grandChild, 4.5)
		backup(child, -1.5)

		require.Equal(t, 2, root.visits)
		require.Equal(t, 3.0, root.score)
		require.Equal(t, 2, child.visits)
		require.Equal(t, 3.0, child.score)
		require.Equal(t, 1, grandChild.visits)
		require.Equal(t, 4.5, grandChild.average())
	})
}
