package game

import "fmt"

const (
	UnitCard  = "unit"
	SpellCard = "spell"
)

// CardSnapshot describes a card held in hand.
type CardSnapshot struct {
	Kind     string `yaml:"kind"` // unit | spell
	Template string `yaml:"template"`
	Owner    Player `yaml:"owner"`
}

// UnitSnapshot describes a unit on the board. Zero Power and Health take the
// template values.
type UnitSnapshot struct {
	Template   string    `yaml:"template"`
	Owner      Player    `yaml:"owner"`
	Pos        Position  `yaml:"pos"`
	Power      int       `yaml:"power"`
	Health     int       `yaml:"health"`
	NextAction int       `yaml:"next_action"`
	ProvokedBy *Position `yaml:"provoked_by"`
}

// Snapshot is a plain description of a live game from which a search state
// is built.
type Snapshot struct {
	Columns       int            `yaml:"columns"`
	Rows          int            `yaml:"rows"`
	Player1Hand   []CardSnapshot `yaml:"player1_hand"`
	Player2Hand   []CardSnapshot `yaml:"player2_hand"`
	Board         []UnitSnapshot `yaml:"board"`
	CurrentTurn   Player         `yaml:"current_turn"`
	TurnNumber    int            `yaml:"turn_number"`
	Scale         int            `yaml:"scale"`
	Player1Supply int            `yaml:"player1_supply"`
	Player2Supply int            `yaml:"player2_supply"`
}

// FromSnapshot builds a state from a snapshot. It refuses snapshots that
// reference unknown templates or describe an impossible board.
func FromSnapshot(snap Snapshot, catalog *Catalog, rules Rules, weights Weights) (*State, error) {
	if snap.Columns != Columns || snap.Rows != Rows {
		return nil, fmt.Errorf("grid %dx%d, want %dx%d: %w", snap.Columns, snap.Rows, Columns, Rows, ErrInvalidGrid)
	}
	if snap.CurrentTurn != Player1 && snap.CurrentTurn != Player2 {
		return nil, fmt.Errorf("current turn %v: %w", snap.CurrentTurn, ErrInvalidOwner)
	}

	s := NewGameState(catalog, rules, weights)
	s.CurrentTurn = snap.CurrentTurn
	s.TurnNumber = snap.TurnNumber
	s.Scale = snap.Scale
	s.Player1Supply = snap.Player1Supply
	s.Player2Supply = snap.Player2Supply

	for _, hand := range []struct {
		owner Player
		cards []CardSnapshot
	}{{Player1, snap.Player1Hand}, {Player2, snap.Player2Hand}} {
		for _, cs := range hand.cards {
			if cs.Owner != hand.owner {
				return nil, fmt.Errorf("%s in %s hand owned by %v: %w", cs.Template, hand.owner, cs.Owner, ErrInvalidOwner)
			}
			card, err := s.cardFromSnapshot(cs)
			if err != nil {
				return nil, err
			}
			if err := s.AddToHand(card); err != nil {
				return nil, err
			}
		}
	}

	provokes := make(map[*Unit]Position)
	for _, us := range snap.Board {
		u, err := s.unitFromSnapshot(us)
		if err != nil {
			return nil, err
		}
		if err := s.Place(u, us.Pos); err != nil {
			return nil, err
		}
		if us.ProvokedBy != nil {
			provokes[u] = *us.ProvokedBy
		}
	}
	for u, pos := range provokes {
		provoker := s.Grid.At(pos)
		if provoker == nil {
			return nil, fmt.Errorf("%v provoked from empty tile %s: %w", u, pos, ErrInvalidPosition)
		}
		u.Provoked = true
		u.ProvokedBy = provoker.Serial
	}
	return s, nil
}

func (s *State) cardFromSnapshot(cs CardSnapshot) (Card, error) {
	switch cs.Kind {
	case UnitCard, "":
		t, err := s.Catalog.Unit(cs.Template)
		if err != nil {
			return nil, err
		}
		return s.NewUnit(t, cs.Owner), nil
	case SpellCard:
		t, err := s.Catalog.Spell(cs.Template)
		if err != nil {
			return nil, err
		}
		return s.NewSpell(t, cs.Owner), nil
	default:
		return nil, fmt.Errorf("card kind %q: %w", cs.Kind, ErrUnknownTemplate)
	}
}

func (s *State) unitFromSnapshot(us UnitSnapshot) (*Unit, error) {
	if us.Owner != Player1 && us.Owner != Player2 {
		return nil, fmt.Errorf("%s at %s owned by %v: %w", us.Template, us.Pos, us.Owner, ErrInvalidOwner)
	}
	t, err := s.Catalog.Unit(us.Template)
	if err != nil {
		return nil, err
	}
	u := s.NewUnit(t, us.Owner)
	if us.Power != 0 {
		u.Power = us.Power
	}
	if us.Health != 0 {
		if us.Health < 0 || us.Health > u.MaxHealth {
			return nil, fmt.Errorf("%s at %s with health %d: %w", us.Template, us.Pos, us.Health, ErrInvalidHealth)
		}
		u.Health = us.Health
	}
	if n := len(t.Actions); n > 0 {
		u.NextAction = us.NextAction % n
	}
	return u, nil
}

// Snapshot describes the state as plain values.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Columns:       Columns,
		Rows:          Rows,
		CurrentTurn:   s.CurrentTurn,
		TurnNumber:    s.TurnNumber,
		Scale:         s.Scale,
		Player1Supply: s.Player1Supply,
		Player2Supply: s.Player2Supply,
	}
	for _, card := range s.Player1Hand {
		snap.Player1Hand = append(snap.Player1Hand, cardSnapshot(card))
	}
	for _, card := range s.Player2Hand {
		snap.Player2Hand = append(snap.Player2Hand, cardSnapshot(card))
	}
	for x := 0; x < Columns; x++ {
		for y := 0; y < Rows; y++ {
			u := s.Grid[x][y]
			if u == nil {
				continue
			}
			us := UnitSnapshot{
				Template:   u.Name(),
				Owner:      u.Side,
				Pos:        u.Pos,
				Power:      u.Power,
				Health:     u.Health,
				NextAction: u.NextAction,
			}
			if provoker := s.UnitBySerial(u.ProvokedBy); u.Provoked && provoker != nil {
				pos := provoker.Pos
				us.ProvokedBy = &pos
			}
			snap.Board = append(snap.Board, us)
		}
	}
	return snap
}

func cardSnapshot(c Card) CardSnapshot {
	kind := UnitCard
	if _, ok := c.(*Spell); ok {
		kind = SpellCard
	}
	return CardSnapshot{Kind: kind, Template: c.Name(), Owner: c.Owner()}
}
