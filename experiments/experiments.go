package experiments

import (
	"battler/config"
	"battler/engine"
	"battler/experiments/metrics"
	"battler/game"
	"battler/searcher"
	"battler/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Setup is shared by every game of an experiment.
type Setup struct {
	Config   config.Config
	Catalog  *game.Catalog
	Games    int // Per match up
	MaxTurns int
	OutDir   string
	Seed     uint64
}

// Result holds everything an experiment recorded.
type Result struct {
	Configs     []metrics.AgentConfig
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
	Wins        map[int]int // Wins by AgentConfig.ID
}

// RunStrengthExperiment pairs the configured search agent with a random
// baseline, alternating who starts.
func RunStrengthExperiment(setup Setup) (Result, error) {
	baseline := metrics.AgentConfig{ID: 0}
	mcts := searchConfig(setup.Config, 1)

	matchUps := [][]metrics.AgentConfig{
		{mcts, baseline},
		{baseline, mcts},
	}
	return runExperiment("strength", setup, []metrics.AgentConfig{baseline, mcts}, matchUps)
}

// RunParallelizationExperiment pairs agents with more search workers
// against the single-worker agent under the same time or iteration budget.
func RunParallelizationExperiment(setup Setup, goroutines []int) (Result, error) {
	baseline := searchConfig(setup.Config, 0)
	baseline.Goroutines = 1

	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, g := range goroutines {
		config := searchConfig(setup.Config, i+1)
		config.Goroutines = g
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("parallelization", setup, configs, matchUps)
}

func searchConfig(c config.Config, id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:           id,
		Goroutines:   c.Search.Goroutines,
		Iterations:   c.Search.Iterations,
		Duration:     c.Search.Duration,
		Exploration:  c.Search.Exploration,
		RolloutTurns: c.Search.RolloutTurns,
	}
}

func runExperiment(name string, setup Setup, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (Result, error) {
	seed := setup.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	result := Result{Configs: configs, Wins: make(map[int]int)}
	count := 0

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1 := matchUp[0]
		config2 := matchUp[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < setup.Games; i++ {
			winner, gameMetric, moveMetrics := runGame(setup, config1, config2, rng)
			count++
			result.GameRecords = append(result.GameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.MoveRecords = append(result.MoveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			switch winner {
			case game.Player1:
				result.Wins[config1.ID]++
			case game.Player2:
				result.Wins[config2.ID]++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	if setup.OutDir == "" {
		return result, nil
	}
	return result, store(name, setup.OutDir, result)
}

func store(name, outDir string, result Result) error {
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(result.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.GameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteMoveParquet(result.MoveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame plays a single match between two agents on a fresh deal.
func runGame(setup Setup, config1, config2 metrics.AgentConfig, rng *rand.Rand) (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	agents := []agent.Agent{
		createAgent(setup.Config, config1, rng.Uint64()),
		createAgent(setup.Config, config2, rng.Uint64()),
	}
	state := game.NewMatch(setup.Catalog, setup.Config.Rules, setup.Config.Weights, rng)
	e := engine.LocalEngine(agents, state, rand.New(rand.NewSource(rng.Uint64())))
	if setup.MaxTurns > 0 {
		e.MaxTurns = setup.MaxTurns
	}
	return e.Run()
}

func createAgent(c config.Config, config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.IsRandom() {
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed)))
	}
	return agent.NewEvaluationAgent(createMCTS(c, config, seed))
}

// createMCTS starts from the configured search and applies the agent's
// overrides on top.
func createMCTS(c config.Config, config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := append(c.SearchOptions(),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithExploration(config.Exploration),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.RolloutTurns > 0 {
		options = append(options, searcher.WithRolloutTurns(config.RolloutTurns))
	}

	return searcher.NewMCTS(options...)
}
