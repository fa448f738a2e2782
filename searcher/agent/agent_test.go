package agent

import (
	"battler/game"
	"battler/searcher"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAgents(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	state := game.NewMatch(game.DefaultCatalog(), game.DefaultRules(), game.DefaultWeights(), rng)

	t.Run("random agent plays legal moves", func(t *testing.T) {
		a := NewRandomAgent(rand.New(rand.NewSource(4)))
		for i := 0; i < 20; i++ {
			move, metric := a.FindMove(state)
			require.True(t, state.IsLegal(move))
			require.Zero(t, metric.Episodes)
		}
	})

	t.Run("evaluation agent reports search metrics", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithIterations(30), searcher.WithRolloutTurns(4), searcher.WithSeed(8), searcher.WithMetrics())
		a := NewEvaluationAgent(mcts)

		move, metric := a.FindMove(state)

		require.True(t, state.IsLegal(move))
		require.Equal(t, 30, metric.Episodes)
	})
}
