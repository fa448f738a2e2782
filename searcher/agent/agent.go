package agent

import (
	"battler/experiments/metrics"
	"battler/game"
)

type Agent interface {
	// FindMove returns the chosen move and performance metrics (if collected) from the search process
	FindMove(state *game.State) (game.Move, metrics.SearchMetric)
}
