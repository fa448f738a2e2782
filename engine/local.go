package engine

import (
	"battler/experiments/metrics"
	"battler/game"
	"battler/meta"
	"battler/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Local drives a match between in-process agents. It owns the authoritative
// state; agents only ever search copies of it.
type Local struct {
	State    *game.State
	Agents   []agent.Agent // Indexed by player - 1
	MaxTurns int
	rng      *rand.Rand
}

func LocalEngine(agents []agent.Agent, state *game.State, rng *rand.Rand) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	return &Local{
		State:    state,
		Agents:   agents,
		MaxTurns: meta.MAX_TURNS,
		rng:      rng,
	}
}

// Run executes the game loop until the scale tips or MaxTurns is reached.
func (e *Local) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		StartingPlayer: int(e.State.CurrentTurn),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: %s is starting", gameMetric.ID, e.State.CurrentTurn)

	step := 0
	for !e.State.IsTerminal() && e.State.TurnNumber <= e.MaxTurns {
		player := e.State.CurrentTurn
		move, searchMetric := e.findMove(player)
		step++

		if err := e.State.Perform(move, e.rng); err != nil {
			log.Warn().Msgf("game %s: %s failed to play %v, ending turn: %v", gameMetric.ID, player, move, err)
			move = game.EndTurn{}
			e.State.FinishTurn(e.rng)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Move:         move.String(),
			Scale:        e.State.Scale,
			SearchMetric: searchMetric,
		})

		if _, ok := move.(game.EndTurn); ok {
			log.Info().Msgf("game %s: turn %d over, scale %d", gameMetric.ID, e.State.TurnNumber-1, e.State.Scale)
		} else {
			log.Debug().Msgf("game %s: %s played %v", gameMetric.ID, player, move)
		}
	}

	winner := e.State.Winner()
	if winner != game.NoPlayer {
		log.Info().Msgf("game %s: %s won after %d turns", gameMetric.ID, winner, e.State.TurnNumber)
	} else {
		log.Info().Msgf("game %s: stopped after %d turns without a winner", gameMetric.ID, e.MaxTurns)
	}

	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.TotalTurns = e.State.TurnNumber
	gameMetric.FinalScale = e.State.Scale
	return winner, gameMetric, moveMetrics
}

// findMove asks the player's agent for a move. A failing or illegal search
// ends the turn instead.
func (e *Local) findMove(player game.Player) (move game.Move, metric metrics.SearchMetric) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("%s search failed, ending turn: %v", player, r)
			move = game.EndTurn{}
		}
	}()

	move, metric = e.Agents[player-1].FindMove(e.State)
	if move == nil || !e.State.IsLegal(move) {
		log.Warn().Msgf("%s chose illegal move %v, ending turn", player, move)
		return game.EndTurn{}, metric
	}
	return move, metric
}
