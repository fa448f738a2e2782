package engine

import (
	"battler/experiments/metrics"
	"battler/game"
)

type Engine interface {
	// Run plays a match till the scale decides a winner or the turn limit is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
