package main

import (
	"battler/config"
	"battler/experiments"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	experiment := flag.String("experiment", "strength", "experiment to run: strength | parallelization")
	games := flag.Int("games", 10, "games per match up")
	iterations := flag.Int("iterations", 0, "search iterations per move (overrides config)")
	maxTurns := flag.Int("max-turns", 0, "turn limit per game (0 keeps the default)")
	seed := flag.Uint64("seed", 0, "random seed (0 = now)")
	out := flag.String("out", "experiments/results", "output directory for records")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if l, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(l)
	}

	c := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		c = loaded
	}
	if *iterations > 0 {
		c.Search.Iterations = *iterations
		c.Search.Duration = 0
	}

	if *seed == 0 {
		*seed = c.Search.Seed
	}

	catalog, err := c.LoadCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	setup := experiments.Setup{
		Config:   c,
		Catalog:  catalog,
		Games:    *games,
		MaxTurns: *maxTurns,
		OutDir:   *out,
		Seed:     *seed,
	}

	var result experiments.Result
	switch *experiment {
	case "strength":
		result, err = experiments.RunStrengthExperiment(setup)
	case "parallelization":
		result, err = experiments.RunParallelizationExperiment(setup, []int{2, 4, 8})
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	for _, config := range result.Configs {
		log.Info().Msgf("agent %d %+v won %d games", config.ID, config, result.Wins[config.ID])
	}
}
