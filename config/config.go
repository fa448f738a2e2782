package config

import (
	"battler/game"
	"battler/meta"
	"battler/searcher"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Search configures the tree search of an agent.
type Search struct {
	Iterations   int           `yaml:"iterations"`
	Exploration  float64       `yaml:"exploration"`
	Goroutines   int           `yaml:"goroutines"`
	RolloutTurns int           `yaml:"rollout_turns"`
	Duration     time.Duration `yaml:"duration"`   // Replaces iterations when set
	Seed         uint64        `yaml:"seed"`       // 0 seeds from the clock
	Evaluation   string        `yaml:"evaluation"` // score | scale
}

type Config struct {
	Search  Search       `yaml:"search"`
	Weights game.Weights `yaml:"weights"`
	Rules   game.Rules   `yaml:"rules"`
	Catalog string       `yaml:"catalog"` // Empty uses the built-in catalog
}

func Default() Config {
	return Config{
		Search: Search{
			Iterations:   meta.ITERATIONS,
			Exploration:  meta.EXPLORATION,
			Goroutines:   meta.GO_ROUTINES,
			RolloutTurns: meta.ROLLOUT_TURNS,
			Evaluation:   "score",
		},
		Weights: game.DefaultWeights(),
		Rules:   game.DefaultRules(),
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if c.Search.Duration > 0 && c.Search.Iterations == meta.ITERATIONS {
		c.Search.Iterations = 0
	}
	if c.Search.Iterations <= 0 && c.Search.Duration <= 0 {
		return Config{}, fmt.Errorf("search needs iterations or a duration")
	}
	if _, err := c.Search.EvaluationFn(); err != nil {
		return Config{}, err
	}
	if c.Rules.HandLimit <= 0 {
		return Config{}, fmt.Errorf("hand limit must be positive, got %d", c.Rules.HandLimit)
	}
	return c, nil
}

// EvaluationFn resolves the named rollout evaluation.
func (s Search) EvaluationFn() (game.EvaluationFn, error) {
	switch s.Evaluation {
	case "", "score":
		return game.Score, nil
	case "scale":
		return game.EvaluateScale, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q", s.Evaluation)
	}
}

// SearchOptions translates the search section into searcher options.
func (c Config) SearchOptions() []searcher.Option {
	evaluate, err := c.Search.EvaluationFn()
	if err != nil {
		evaluate = game.Score
	}
	options := []searcher.Option{
		searcher.WithEvaluationFn(evaluate),
		searcher.WithExploration(c.Search.Exploration),
		searcher.WithGoroutines(c.Search.Goroutines),
		searcher.WithRolloutTurns(c.Search.RolloutTurns),
	}
	if c.Search.Iterations > 0 {
		options = append(options, searcher.WithIterations(c.Search.Iterations))
	} else {
		options = append(options, searcher.WithDuration(c.Search.Duration))
	}
	if c.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Search.Seed))
	}
	return options
}

func (c Config) LoadCatalog() (*game.Catalog, error) {
	if c.Catalog == "" {
		return game.DefaultCatalog(), nil
	}
	return game.LoadCatalogFile(c.Catalog)
}
