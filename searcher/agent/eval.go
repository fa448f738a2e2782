package agent

import (
	"battler/experiments/metrics"
	"battler/game"
	"battler/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the best move found by tree search.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	return a.mcts.Search(state)
}
