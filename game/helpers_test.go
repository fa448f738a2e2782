package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestState() *State {
	return NewGameState(DefaultCatalog(), DefaultRules(), DefaultWeights())
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func action(r ActionRange, targets Targets, keywords ...Keyword) *ActionInfo {
	return &ActionInfo{Name: "test", Range: r, Keywords: keywords, Targets: targets}
}

var enemies = Targets{Enemies: true}

func template(name string, power, health int, actions ...*ActionInfo) *UnitTemplate {
	return &UnitTemplate{Name: name, Cost: 1, Power: power, Health: health, Actions: actions}
}

// place puts a fresh unit of the template on the board.
func place(t *testing.T, s *State, tmpl *UnitTemplate, owner Player, x, y int) *Unit {
	t.Helper()
	u := s.NewUnit(tmpl, owner)
	require.NoError(t, s.Place(u, Position{X: x, Y: y}))
	return u
}

func dummy(health int) *UnitTemplate {
	return template("Dummy", 0, health)
}

func requireConsistent(t *testing.T, s *State) {
	t.Helper()
	onGrid := 0
	for x := 0; x < Columns; x++ {
		for y := 0; y < Rows; y++ {
			if u := s.Grid[x][y]; u != nil {
				onGrid++
				require.Contains(t, s.ActiveUnits, u, "Tile units should be active")
				require.Equal(t, Position{X: x, Y: y}, u.Pos)
				require.True(t, u.OnBoard)
			}
		}
	}
	require.Len(t, s.ActiveUnits, onGrid, "Active units should all be on tiles")
	for _, p := range []Player{Player1, Player2} {
		for _, card := range s.Hand(p) {
			require.Equal(t, p, card.Owner(), "Hands are partitioned by owner")
		}
	}
}
