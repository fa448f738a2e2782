package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Move is a discrete decision of the player to move.
type Move interface {
	fmt.Stringer
	isMove()
}

// PlayUnit plays a unit card from hand onto an empty tile.
type PlayUnit struct {
	CardID int
	Card   string
	Pos    Position
}

// PlaySpell casts a spell card centred on a tile.
type PlaySpell struct {
	CardID int
	Card   string
	Center Position
}

// EndTurn resolves the rest of the turn and passes it to the opponent.
type EndTurn struct{}

func (PlayUnit) isMove()  {}
func (PlaySpell) isMove() {}
func (EndTurn) isMove()   {}

func (m PlayUnit) String() string {
	return fmt.Sprintf("PlayUnit(%s#%d -> %s)", m.Card, m.CardID, m.Pos)
}

func (m PlaySpell) String() string {
	return fmt.Sprintf("PlaySpell(%s#%d @ %s)", m.Card, m.CardID, m.Center)
}

func (EndTurn) String() string {
	return "EndTurn"
}

// Apply returns a new state with the move performed, leaving s untouched.
func (s *State) Apply(m Move, rng *rand.Rand) (*State, error) {
	next := s.Clone()
	if err := next.Perform(m, rng); err != nil {
		return nil, err
	}
	return next, nil
}

// Perform mutates the state in place. The rng drives the draw phase of an
// EndTurn.
func (s *State) Perform(m Move, rng *rand.Rand) error {
	switch m := m.(type) {
	case PlayUnit:
		return s.playUnit(m)
	case PlaySpell:
		return s.playSpell(m)
	case EndTurn:
		s.FinishTurn(rng)
		return nil
	default:
		panic(fmt.Sprintf("unexpected move type %T", m))
	}
}

func (s *State) playUnit(m PlayUnit) error {
	player := s.CurrentTurn
	card := s.findInHand(player, m.CardID)
	u, ok := card.(*Unit)
	if !ok {
		return fmt.Errorf("%v: %w", m, ErrNotInHand)
	}
	if err := s.checkPlayable(u, m); err != nil {
		return err
	}
	if !player.owns(m.Pos.X) || !s.isActiveColumn(m.Pos.X) {
		return fmt.Errorf("%v: %w", m, ErrInvalidPosition)
	}
	if s.Grid.At(m.Pos) != nil {
		return fmt.Errorf("%v: %w", m, ErrOccupiedTile)
	}
	if _, err := s.RemoveFromHand(player, u.Serial); err != nil {
		return err
	}
	if err := s.Place(u, m.Pos); err != nil {
		return err
	}
	s.addSupply(player, -u.Cost())
	return nil
}

func (s *State) playSpell(m PlaySpell) error {
	if !s.Rules.EnableSpells {
		return fmt.Errorf("%v: %w", m, ErrSpellsDisabled)
	}
	player := s.CurrentTurn
	spell, ok := s.findInHand(player, m.CardID).(*Spell)
	if !ok {
		return fmt.Errorf("%v: %w", m, ErrNotInHand)
	}
	if err := s.checkPlayable(spell, m); err != nil {
		return err
	}
	if !m.Center.InBounds() {
		return fmt.Errorf("%v: %w", m, ErrInvalidPosition)
	}
	if _, err := s.RemoveFromHand(player, spell.Serial); err != nil {
		return err
	}
	s.addSupply(player, -spell.Cost())
	s.PerformSpell(spell, m.Center)
	return nil
}

func (s *State) checkPlayable(c Card, m Move) error {
	if c.Cost() > s.Supply(s.CurrentTurn) {
		return fmt.Errorf("%v costs %d with %d supply: %w", m, c.Cost(), s.Supply(s.CurrentTurn), ErrIllegalMove)
	}
	return nil
}

func (s *State) findInHand(p Player, id int) Card {
	for _, card := range s.Hand(p) {
		if card.ID() == id {
			return card
		}
	}
	return nil
}

func (s *State) isActiveColumn(x int) bool {
	for _, column := range s.ActiveColumns() {
		if column == x {
			return true
		}
	}
	return false
}

// IsLegal reports whether the move is among the available actions.
func (s *State) IsLegal(m Move) bool {
	for _, legal := range s.AvailableActions() {
		if legal == m {
			return true
		}
	}
	return false
}
