package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func withCard(t *testing.T, s *State, name string, owner Player) Card {
	t.Helper()
	var card Card
	if tmpl, err := s.Catalog.Unit(name); err == nil {
		card = s.NewUnit(tmpl, owner)
	} else {
		tmpl, err := s.Catalog.Spell(name)
		require.NoError(t, err)
		card = s.NewSpell(tmpl, owner)
	}
	require.NoError(t, s.AddToHand(card))
	return card
}

func TestPlayUnit(t *testing.T) {
	t.Run("places the unit and pays its cost", func(t *testing.T) {
		s := newTestState()
		card := withCard(t, s, "Archer", Player1)
		m := PlayUnit{CardID: card.ID(), Card: card.Name(), Pos: Position{X: 1, Y: 3}}
		require.True(t, s.IsLegal(m))

		require.NoError(t, s.Perform(m, newRand()))

		require.Same(t, card, s.Grid.At(m.Pos))
		require.Empty(t, s.Player1Hand)
		require.Equal(t, 7, s.Player1Supply)
		require.Equal(t, Player1, s.CurrentTurn, "Playing a card does not end the turn")
		requireConsistent(t, s)
	})

	t.Run("rejects illegal plays", func(t *testing.T) {
		s := newTestState()
		card := withCard(t, s, "Stormcaller", Player1)
		enemy := withCard(t, s, "Footman", Player2)
		place(t, s, dummy(1), Player1, 0, 0)

		for _, tc := range []struct {
			name string
			move Move
			err  error
		}{
			{"unknown card", PlayUnit{CardID: 99, Card: "Ghost", Pos: Position{X: 0, Y: 1}}, ErrNotInHand},
			{"opponent's card", PlayUnit{CardID: enemy.ID(), Card: enemy.Name(), Pos: Position{X: 0, Y: 1}}, ErrNotInHand},
			{"enemy half", PlayUnit{CardID: card.ID(), Card: card.Name(), Pos: Position{X: 3, Y: 1}}, ErrInvalidPosition},
			{"occupied tile", PlayUnit{CardID: card.ID(), Card: card.Name(), Pos: Position{X: 0, Y: 0}}, ErrOccupiedTile},
		} {
			err := s.Perform(tc.move, newRand())
			require.ErrorIs(t, err, tc.err, tc.name)
			require.False(t, s.IsLegal(tc.move), tc.name)
		}

		s.Player1Supply = 6
		err := s.Perform(PlayUnit{CardID: card.ID(), Card: card.Name(), Pos: Position{X: 0, Y: 1}}, newRand())
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Len(t, s.Player1Hand, 1, "A rejected play keeps the card in hand")
		require.Equal(t, 6, s.Player1Supply)
	})

	t.Run("collapsed columns are not playable", func(t *testing.T) {
		s := newTestState()
		s.Scale = -2
		card := withCard(t, s, "Footman", Player1)

		err := s.Perform(PlayUnit{CardID: card.ID(), Card: card.Name(), Pos: Position{X: 0, Y: 0}}, newRand())

		require.ErrorIs(t, err, ErrInvalidPosition)
	})
}

func TestPlaySpell(t *testing.T) {
	t.Run("disabled spells are rejected", func(t *testing.T) {
		s := newTestState()
		card := withCard(t, s, "Fireball", Player1)

		err := s.Perform(PlaySpell{CardID: card.ID(), Card: card.Name(), Center: Position{X: 4, Y: 2}}, newRand())

		require.ErrorIs(t, err, ErrSpellsDisabled)
		require.Len(t, s.Player1Hand, 1)
	})

	t.Run("heal spell restores allies only", func(t *testing.T) {
		s := newTestState()
		s.Rules.EnableSpells = true
		card := withCard(t, s, "Renewal", Player1)
		ally := place(t, s, dummy(6), Player1, 2, 0)
		ally.Health = 1
		enemy := place(t, s, dummy(6), Player2, 3, 4)
		enemy.Health = 1

		require.NoError(t, s.Perform(PlaySpell{CardID: card.ID(), Card: card.Name(), Center: Position{X: 2, Y: 2}}, newRand()))

		require.Equal(t, 4, ally.Health)
		require.Equal(t, 1, enemy.Health)
	})
}

func TestApply(t *testing.T) {
	t.Run("apply leaves the original untouched", func(t *testing.T) {
		s := newTestState()
		card := withCard(t, s, "Footman", Player1)
		before := s.Snapshot()

		next, err := s.Apply(PlayUnit{CardID: card.ID(), Card: card.Name(), Pos: Position{X: 2, Y: 2}}, newRand())

		require.NoError(t, err)
		require.Equal(t, before, s.Snapshot())
		require.NotNil(t, next.Grid.At(Position{X: 2, Y: 2}))
		require.Nil(t, s.Grid.At(Position{X: 2, Y: 2}))
	})

	t.Run("end turn resolves the turn", func(t *testing.T) {
		s := newTestState()
		place(t, s, dummy(3), Player1, 2, 0)

		next, err := s.Apply(EndTurn{}, newRand())

		require.NoError(t, err)
		require.Equal(t, Player2, next.CurrentTurn)
		require.Equal(t, 1, next.Scale, "Empty enemy frontline lets the unit advance")
		require.Equal(t, Player1, s.CurrentTurn)
		require.Zero(t, s.Scale)
	})

	t.Run("failed moves return an error and no state", func(t *testing.T) {
		s := newTestState()

		next, err := s.Apply(PlayUnit{CardID: 1, Card: "Ghost"}, newRand())

		require.ErrorIs(t, err, ErrNotInHand)
		require.Nil(t, next)
	})
}

func TestMoveString(t *testing.T) {
	require.Equal(t, "EndTurn", EndTurn{}.String())
	require.Equal(t, "PlayUnit(Archer#3 -> (1,2))", PlayUnit{CardID: 3, Card: "Archer", Pos: Position{X: 1, Y: 2}}.String())
}
