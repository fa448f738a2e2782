package engine

import (
	"battler/experiments/metrics"
	"battler/game"
	"battler/searcher"
	"battler/searcher/agent"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type panickingAgent struct{}

func (panickingAgent) FindMove(*game.State) (game.Move, metrics.SearchMetric) {
	panic("search blew up")
}

type illegalAgent struct{}

func (illegalAgent) FindMove(*game.State) (game.Move, metrics.SearchMetric) {
	return game.PlayUnit{CardID: 999, Card: "Ghost", Pos: game.Position{X: 0, Y: 0}}, metrics.SearchMetric{}
}

func newMatch(seed uint64) *game.State {
	return game.NewMatch(game.DefaultCatalog(), game.DefaultRules(), game.DefaultWeights(), rand.New(rand.NewSource(seed)))
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("plays until the scale decides or the turn limit", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithIterations(20), searcher.WithRolloutTurns(4), searcher.WithSeed(3), searcher.WithMetrics())
		agents := []agent.Agent{
			agent.NewEvaluationAgent(mcts),
			agent.NewRandomAgent(rand.New(rand.NewSource(4))),
		}
		e := LocalEngine(agents, newMatch(1), rand.New(rand.NewSource(5)))
		e.MaxTurns = 30

		winner, gameMetric, moveMetrics := e.Run()

		require.Equal(t, e.State.Winner(), winner)
		if winner == game.NoPlayer {
			require.Greater(t, e.State.TurnNumber, e.MaxTurns)
		}
		require.Equal(t, int(winner), gameMetric.Winner)
		require.Equal(t, 1, gameMetric.StartingPlayer)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.NotEmpty(t, gameMetric.ID)
		for _, mm := range moveMetrics {
			if mm.Player == 1 {
				require.Equal(t, 20, mm.Episodes)
			}
		}
	})

	t.Run("failing search ends the turn", func(t *testing.T) {
		agents := []agent.Agent{panickingAgent{}, panickingAgent{}}
		e := LocalEngine(agents, newMatch(2), rand.New(rand.NewSource(6)))
		e.MaxTurns = 4

		winner, _, moveMetrics := e.Run()

		require.Equal(t, game.NoPlayer, winner)
		require.Len(t, moveMetrics, 4)
		for _, mm := range moveMetrics {
			require.Equal(t, "EndTurn", mm.Move)
		}
	})

	t.Run("illegal move ends the turn", func(t *testing.T) {
		agents := []agent.Agent{illegalAgent{}, illegalAgent{}}
		e := LocalEngine(agents, newMatch(3), rand.New(rand.NewSource(7)))
		e.MaxTurns = 2

		_, _, moveMetrics := e.Run()

		require.Len(t, moveMetrics, 2)
		require.Equal(t, 1, moveMetrics[0].Player)
		require.Equal(t, 2, moveMetrics[1].Player)
	})

	t.Run("needs two agents", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine([]agent.Agent{panickingAgent{}}, newMatch(4), nil)
		})
	})
}
