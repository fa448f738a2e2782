package config

import (
	"battler/game"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty document keeps defaults", func(t *testing.T) {
		c, err := Parse([]byte(""))
		require.NoError(t, err)
		require.Equal(t, Default(), c)
	})

	t.Run("overrides only the given fields", func(t *testing.T) {
		c, err := Parse([]byte(`
search:
  iterations: 250
  goroutines: 4
weights:
  death_touch: 6
rules:
  enable_spells: true
  supply_per_turn: 2
`))
		require.NoError(t, err)
		require.Equal(t, 250, c.Search.Iterations)
		require.Equal(t, 4, c.Search.Goroutines)
		require.Equal(t, 100, c.Search.RolloutTurns)
		require.Equal(t, 6.0, c.Weights.DeathTouch)
		require.Equal(t, 1.0, c.Weights.BoardControl)
		require.True(t, c.Rules.EnableSpells)
		require.Equal(t, 2, c.Rules.SupplyPerTurn)
		require.Equal(t, 10, c.Rules.HandLimit)
	})

	t.Run("duration replaces the default iteration budget", func(t *testing.T) {
		c, err := Parse([]byte("search:\n  duration: 20ms\n"))
		require.NoError(t, err)
		require.Equal(t, 20*time.Millisecond, c.Search.Duration)
		require.Zero(t, c.Search.Iterations)
		require.Len(t, c.SearchOptions(), 5)
	})

	t.Run("rejects a search without budget", func(t *testing.T) {
		_, err := Parse([]byte("search:\n  iterations: 0\n"))
		require.Error(t, err)
	})

	t.Run("rejects an unknown evaluation", func(t *testing.T) {
		_, err := Parse([]byte("search:\n  evaluation: vibes\n"))
		require.Error(t, err)
	})

	t.Run("scale evaluation", func(t *testing.T) {
		c, err := Parse([]byte("search:\n  evaluation: scale\n"))
		require.NoError(t, err)

		evaluate, err := c.Search.EvaluationFn()
		require.NoError(t, err)
		s := game.NewGameState(game.DefaultCatalog(), game.DefaultRules(), game.DefaultWeights())
		s.Scale = 2
		require.Equal(t, 20.0, evaluate(s, game.Player1))
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("search: [1, 2"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads config and catalog from disk", func(t *testing.T) {
		dir := t.TempDir()
		catalog := filepath.Join(dir, "cards.yaml")
		require.NoError(t, os.WriteFile(catalog, []byte(`
units:
  - name: Pikeman
    cost: 1
    power: 1
    health: 2
    actions:
      - name: Poke
        range: reach
        keywords: [damage]
        targets: [enemies]
`), 0o644))
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("catalog: "+catalog+"\nsearch:\n  seed: 7\n"), 0o644))

		c, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, uint64(7), c.Search.Seed)
		require.Len(t, c.SearchOptions(), 6)

		cat, err := c.LoadCatalog()
		require.NoError(t, err)
		require.Len(t, cat.Units, 1)
		require.Equal(t, "Pikeman", cat.Units[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("empty catalog path uses the built-in cards", func(t *testing.T) {
		cat, err := Default().LoadCatalog()
		require.NoError(t, err)
		require.NotEmpty(t, cat.Units)
	})
}
