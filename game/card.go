package game

import (
	"fmt"
	"strings"
)

// ActionRange is the targeting geometry of an action.
type ActionRange int

const (
	Melee ActionRange = iota
	Ranged
	Reach
	Global
)

var rangeNames = map[ActionRange]string{
	Melee:  "Melee",
	Ranged: "Ranged",
	Reach:  "Reach",
	Global: "Global",
}

func (r ActionRange) String() string {
	if name, ok := rangeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ActionRange(%d)", int(r))
}

func ParseRange(s string) (ActionRange, error) {
	for r, name := range rangeNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown action range %q", s)
}

// Keyword is an effect or shape modifier carried by an action or spell.
type Keyword int

const (
	Damage Keyword = iota
	Heal
	Cleave
	Burst
	Nova
	Drain
	Provoke
	DeathTouch
	Overkill
	DrawCard
)

var keywordNames = map[Keyword]string{
	Damage:     "Damage",
	Heal:       "Heal",
	Cleave:     "Cleave",
	Burst:      "Burst",
	Nova:       "Nova",
	Drain:      "Drain",
	Provoke:    "Provoke",
	DeathTouch: "DeathTouch",
	Overkill:   "Overkill",
	DrawCard:   "DrawCard",
}

func (k Keyword) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

func ParseKeyword(s string) (Keyword, error) {
	for k, name := range keywordNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown keyword %q", s)
}

// Targets lists which occupants an action may affect.
type Targets struct {
	Enemies bool
	Allies  bool
	Self    bool
}

// ActionInfo is an immutable action template attached to a unit.
type ActionInfo struct {
	Name     string
	Range    ActionRange
	Keywords []Keyword
	Targets  Targets
}

func (a *ActionInfo) Has(k Keyword) bool {
	for _, keyword := range a.Keywords {
		if keyword == k {
			return true
		}
	}
	return false
}

func (a *ActionInfo) String() string {
	return fmt.Sprintf("%s[%s %v]", a.Name, a.Range, a.Keywords)
}

type UnitTemplate struct {
	Name    string
	Cost    int
	Power   int
	Health  int
	Actions []*ActionInfo
}

// Area is the width x height footprint of a spell.
type Area struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type SpellTemplate struct {
	Name     string
	Cost     int
	Power    int
	Area     Area
	Keywords []Keyword
	Targets  Targets
}

func (t *SpellTemplate) Has(k Keyword) bool {
	for _, keyword := range t.Keywords {
		if keyword == k {
			return true
		}
	}
	return false
}

// Card is a card held in hand: either a *Unit or a *Spell.
type Card interface {
	ID() int
	Name() string
	Cost() int
	Owner() Player
	copyCard() Card
}

// Unit is a unit instance. It lives in a hand until played and on the board
// until its health drops to zero.
type Unit struct {
	Serial     int
	Template   *UnitTemplate
	Side       Player
	Power      int
	Health     int
	MaxHealth  int
	NextAction int
	Provoked   bool
	ProvokedBy int // Serial of the provoking unit, 0 when not provoked
	Pos        Position
	OnBoard    bool
}

func newUnit(serial int, t *UnitTemplate, owner Player) *Unit {
	return &Unit{
		Serial:    serial,
		Template:  t,
		Side:      owner,
		Power:     t.Power,
		Health:    t.Health,
		MaxHealth: t.Health,
	}
}

func (u *Unit) ID() int        { return u.Serial }
func (u *Unit) Name() string   { return u.Template.Name }
func (u *Unit) Cost() int      { return u.Template.Cost }
func (u *Unit) Owner() Player  { return u.Side }
func (u *Unit) copyCard() Card { return u.copy() }

func (u *Unit) copy() *Unit {
	c := *u
	return &c
}

func (u *Unit) Actions() []*ActionInfo {
	return u.Template.Actions
}

// CurrentAction is the action the unit fires next, nil if it has none.
func (u *Unit) CurrentAction() *ActionInfo {
	actions := u.Actions()
	if len(actions) == 0 {
		return nil
	}
	return actions[u.NextAction%len(actions)]
}

func (u *Unit) advanceAction() {
	if n := len(u.Actions()); n > 0 {
		u.NextAction = (u.NextAction + 1) % n
	}
}

func (u *Unit) Heal(amount int) {
	u.Health += amount
	if u.Health > u.MaxHealth {
		u.Health = u.MaxHealth
	}
	if u.Health < 0 {
		u.Health = 0
	}
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d(%s %d/%d)", u.Name(), u.Serial, u.Side, u.Power, u.Health)
}

// Spell is a one-shot card consumed when cast.
type Spell struct {
	Serial   int
	Template *SpellTemplate
	Side     Player
	Power    int
	Area     Area
}

func newSpell(serial int, t *SpellTemplate, owner Player) *Spell {
	return &Spell{
		Serial:   serial,
		Template: t,
		Side:     owner,
		Power:    t.Power,
		Area:     t.Area,
	}
}

func (s *Spell) ID() int       { return s.Serial }
func (s *Spell) Name() string  { return s.Template.Name }
func (s *Spell) Cost() int     { return s.Template.Cost }
func (s *Spell) Owner() Player { return s.Side }

func (s *Spell) copyCard() Card {
	c := *s
	return &c
}

func (s *Spell) String() string {
	return fmt.Sprintf("%s#%d(%s %d %dx%d)", s.Name(), s.Serial, s.Side, s.Power, s.Area.W, s.Area.H)
}
