package experiments

import (
	"battler/config"
	"battler/game"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSetup(t *testing.T) Setup {
	c := config.Default()
	c.Search.Iterations = 10
	c.Search.RolloutTurns = 3
	return Setup{
		Config:   c,
		Catalog:  game.DefaultCatalog(),
		Games:    1,
		MaxTurns: 12,
		OutDir:   t.TempDir(),
		Seed:     17,
	}
}

func TestRunStrengthExperiment(t *testing.T) {
	setup := testSetup(t)

	result, err := RunStrengthExperiment(setup)

	require.NoError(t, err)
	require.Len(t, result.Configs, 2)
	require.Len(t, result.GameRecords, 2)
	require.NotEmpty(t, result.MoveRecords)
	require.Equal(t, 1, result.GameRecords[0].Agent1)
	require.Equal(t, 0, result.GameRecords[1].Agent1)

	wins := 0
	for _, n := range result.Wins {
		wins += n
	}
	decided := 0
	for _, record := range result.GameRecords {
		if record.Winner != 0 {
			decided++
		}
	}
	require.Equal(t, decided, wins)

	dirs, err := os.ReadDir(filepath.Join(setup.OutDir, "strength"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "move_records.parquet"} {
		require.FileExists(t, filepath.Join(setup.OutDir, "strength", dirs[0].Name(), name))
	}
}

func TestRunParallelizationExperiment(t *testing.T) {
	setup := testSetup(t)
	setup.OutDir = ""

	result, err := RunParallelizationExperiment(setup, []int{2})

	require.NoError(t, err)
	require.Len(t, result.Configs, 2)
	require.Equal(t, 2, result.Configs[1].Goroutines)
	require.Len(t, result.GameRecords, 1)
}
