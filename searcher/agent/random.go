package agent

import (
	"battler/experiments/metrics"
	"battler/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal moves.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	return state.RandomAction(a.rng), metrics.SearchMetric{}
}
