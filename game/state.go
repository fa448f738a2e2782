package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	WinningScale = 4
)

// State is a self-contained simulation of a match. It never references
// presentation objects; every search node owns its own State.
type State struct {
	ID            string
	Player1Hand   []Card
	Player2Hand   []Card
	ActiveUnits   []*Unit
	Grid          Board
	CurrentTurn   Player
	TurnNumber    int
	Scale         int
	Player1Supply int
	Player2Supply int

	// Shared and never mutated by the simulation
	Rules   *Rules
	Weights *Weights
	Catalog *Catalog

	serial int
}

// NewGameState returns an empty board with Player1 to move.
func NewGameState(catalog *Catalog, rules Rules, weights Weights) *State {
	return &State{
		ID:            uuid.NewString(),
		CurrentTurn:   Player1,
		TurnNumber:    1,
		Player1Supply: rules.StartingSupply,
		Player2Supply: rules.StartingSupply,
		Rules:         &rules,
		Weights:       &weights,
		Catalog:       catalog,
	}
}

// NewMatch returns a fresh match where both players hold a random opening hand.
func NewMatch(catalog *Catalog, rules Rules, weights Weights, rng *rand.Rand) *State {
	s := NewGameState(catalog, rules, weights)
	for i := 0; i < rules.StartingHand; i++ {
		s.draw(Player1, rng)
		s.draw(Player2, rng)
	}
	return s
}

// Clone deep copies the state: hands, active units and the grid are all
// distinct from the original, so mutating the clone never leaks back.
func (s *State) Clone() *State {
	units := make(map[*Unit]*Unit, len(s.ActiveUnits))

	clone := &State{
		ID:            uuid.NewString(),
		Player1Hand:   copyHand(s.Player1Hand),
		Player2Hand:   copyHand(s.Player2Hand),
		ActiveUnits:   make([]*Unit, len(s.ActiveUnits)),
		CurrentTurn:   s.CurrentTurn,
		TurnNumber:    s.TurnNumber,
		Scale:         s.Scale,
		Player1Supply: s.Player1Supply,
		Player2Supply: s.Player2Supply,
		Rules:         s.Rules,
		Weights:       s.Weights,
		Catalog:       s.Catalog,
		serial:        s.serial,
	}
	for i, u := range s.ActiveUnits {
		c := u.copy()
		units[u] = c
		clone.ActiveUnits[i] = c
	}
	for x := 0; x < Columns; x++ {
		for y := 0; y < Rows; y++ {
			if u := s.Grid[x][y]; u != nil {
				c, ok := units[u]
				if !ok {
					panic(fmt.Sprintf("unit %v on tile (%d,%d) is not active", u, x, y))
				}
				clone.Grid[x][y] = c
			}
		}
	}
	return clone
}

func copyHand(hand []Card) []Card {
	copied := make([]Card, len(hand))
	for i, card := range hand {
		copied[i] = card.copyCard()
	}
	return copied
}

func (s *State) Hand(p Player) []Card {
	if p == Player1 {
		return s.Player1Hand
	}
	return s.Player2Hand
}

func (s *State) setHand(p Player, hand []Card) {
	if p == Player1 {
		s.Player1Hand = hand
	} else {
		s.Player2Hand = hand
	}
}

func (s *State) Supply(p Player) int {
	if p == Player1 {
		return s.Player1Supply
	}
	return s.Player2Supply
}

func (s *State) addSupply(p Player, amount int) {
	if p == Player1 {
		s.Player1Supply += amount
	} else {
		s.Player2Supply += amount
	}
}

func (s *State) nextSerial() int {
	s.serial++
	return s.serial
}

// NewUnit instantiates a unit template for the player without placing it.
func (s *State) NewUnit(t *UnitTemplate, owner Player) *Unit {
	return newUnit(s.nextSerial(), t, owner)
}

func (s *State) NewSpell(t *SpellTemplate, owner Player) *Spell {
	return newSpell(s.nextSerial(), t, owner)
}

// AddToHand appends a card to its owner's hand.
func (s *State) AddToHand(c Card) error {
	if c.Owner() != Player1 && c.Owner() != Player2 {
		return fmt.Errorf("add %s to hand: %w", c.Name(), ErrInvalidOwner)
	}
	s.setHand(c.Owner(), append(s.Hand(c.Owner()), c))
	return nil
}

// RemoveFromHand removes the card with the given id from the player's hand.
func (s *State) RemoveFromHand(p Player, id int) (Card, error) {
	hand := s.Hand(p)
	for i, card := range hand {
		if card.ID() == id {
			rest := make([]Card, 0, len(hand)-1)
			rest = append(rest, hand[:i]...)
			rest = append(rest, hand[i+1:]...)
			s.setHand(p, rest)
			return card, nil
		}
	}
	return nil, fmt.Errorf("card %d of %s: %w", id, p, ErrNotInHand)
}

// Place puts a unit on an empty tile and registers it as active.
func (s *State) Place(u *Unit, pos Position) error {
	if !pos.InBounds() {
		return fmt.Errorf("place %s at %s: %w", u.Name(), pos, ErrInvalidPosition)
	}
	if s.Grid.At(pos) != nil {
		return fmt.Errorf("place %s at %s: %w", u.Name(), pos, ErrOccupiedTile)
	}
	u.Pos = pos
	u.OnBoard = true
	s.Grid.set(pos, u)
	s.ActiveUnits = append(s.ActiveUnits, u)
	return nil
}

func (s *State) removeUnit(u *Unit) {
	for i, active := range s.ActiveUnits {
		if active == u {
			s.ActiveUnits = append(s.ActiveUnits[:i:i], s.ActiveUnits[i+1:]...)
			break
		}
	}
	if s.Grid.At(u.Pos) == u {
		s.Grid.set(u.Pos, nil)
	}
	u.OnBoard = false
}

// UnitBySerial finds an active unit by its serial.
func (s *State) UnitBySerial(serial int) *Unit {
	if serial == 0 {
		return nil
	}
	for _, u := range s.ActiveUnits {
		if u.Serial == serial {
			return u
		}
	}
	return nil
}

// ActiveColumns returns the columns still in play. The battlefield shrinks
// from the losing side as the scale departs from zero.
func (s *State) ActiveColumns() []int {
	columns := make([]int, 0, Columns)
	for x := 0; x < Columns; x++ {
		switch {
		case x == 0 && s.Scale < -1:
		case x == 1 && s.Scale < -2:
		case x == 5 && s.Scale > 1:
		case x == 4 && s.Scale > 2:
		default:
			columns = append(columns, x)
		}
	}
	return columns
}

// AvailableActions enumerates the legal moves of the player to move. The
// last move is always EndTurn.
func (s *State) AvailableActions() []Move {
	var moves []Move
	player := s.CurrentTurn
	supply := s.Supply(player)

	for _, card := range s.Hand(player) {
		if card.Cost() > supply {
			continue
		}
		switch card := card.(type) {
		case *Unit:
			moves = s.appendUnitMoves(moves, card)
		case *Spell:
			if s.Rules.EnableSpells {
				moves = s.appendSpellMoves(moves, card)
			}
		}
	}

	return append(moves, EndTurn{})
}

func (s *State) appendUnitMoves(moves []Move, u *Unit) []Move {
	for _, x := range s.ActiveColumns() {
		if !s.CurrentTurn.owns(x) {
			continue
		}
		for y := 0; y < Rows; y++ {
			pos := Position{X: x, Y: y}
			if s.Grid.At(pos) == nil {
				moves = append(moves, PlayUnit{CardID: u.Serial, Card: u.Name(), Pos: pos})
			}
		}
	}
	return moves
}

func (s *State) appendSpellMoves(moves []Move, spell *Spell) []Move {
	for _, x := range s.ActiveColumns() {
		for y := 0; y < Rows; y++ {
			moves = append(moves, PlaySpell{CardID: spell.Serial, Card: spell.Name(), Center: Position{X: x, Y: y}})
		}
	}
	return moves
}

// RandomAction picks a legal move uniformly, falling back to EndTurn.
func (s *State) RandomAction(rng *rand.Rand) Move {
	moves := s.AvailableActions()
	if len(moves) == 0 {
		return EndTurn{}
	}
	return moves[rng.Intn(len(moves))]
}

func (s *State) IsTerminal() bool {
	return s.Scale <= -WinningScale || s.Scale >= WinningScale
}

// Winner returns the player who pushed the scale to its limit, if any.
func (s *State) Winner() Player {
	switch {
	case s.Scale >= WinningScale:
		return Player1
	case s.Scale <= -WinningScale:
		return Player2
	default:
		return NoPlayer
	}
}

// PerformAdvanceChecks pushes the current player's units forward and tips
// the scale when the opposing frontline is empty. It reports whether an
// advance happened.
func (s *State) PerformAdvanceChecks() bool {
	player := s.CurrentTurn
	if len(s.Grid.UnitsInColumn(player.Opponent().Frontline())) > 0 {
		return false
	}
	if len(s.unitsInHalf(player)) == 0 {
		return false
	}
	s.MoveUnitsForward()
	s.UpdateScale()
	return true
}

func (s *State) unitsInHalf(p Player) []*Unit {
	var units []*Unit
	start, end := p.Half()
	for _, u := range s.Grid.UnitsInColumns(start, end) {
		if u.Side == p {
			units = append(units, u)
		}
	}
	return units
}

// MoveUnitsForward moves the current player's units in its own half one
// column toward the opponent, front units first. Units whose destination is
// off the board or occupied stay where they are.
func (s *State) MoveUnitsForward() {
	player := s.CurrentTurn
	dir := player.Direction()

	units := s.unitsInHalf(player)
	if dir > 0 {
		// Columns come back in ascending order, so the frontline is last
		for i, j := 0, len(units)-1; i < j; i, j = i+1, j-1 {
			units[i], units[j] = units[j], units[i]
		}
	}
	for _, u := range units {
		dest := Position{X: u.Pos.X + dir, Y: u.Pos.Y}
		if !dest.InBounds() || s.Grid.At(dest) != nil {
			continue
		}
		s.Grid.set(u.Pos, nil)
		s.Grid.set(dest, u)
		u.Pos = dest
	}
}

func (s *State) UpdateScale() {
	if s.CurrentTurn == Player1 {
		s.Scale++
	} else {
		s.Scale--
	}
}

// StartPhase has no effects in the current ruleset.
func (s *State) StartPhase() {}

// ActionPhase fires the next action of each of the current player's units,
// from the back column toward the front and from the top row down.
func (s *State) ActionPhase() {
	player := s.CurrentTurn
	dir := player.Direction()

	x := 0
	if dir < 0 {
		x = Columns - 1
	}
	var units []*Unit
	for ; x >= 0 && x < Columns; x += dir {
		for _, u := range s.Grid.UnitsInColumn(x) {
			if u.Side == player {
				units = append(units, u)
			}
		}
	}

	for _, u := range units {
		if !u.OnBoard {
			continue
		}
		s.TriggerAction(u)
	}
}

// DrawPhase gives each player a random card while below the hand limit.
func (s *State) DrawPhase(rng *rand.Rand) {
	for _, p := range []Player{Player1, Player2} {
		if len(s.Hand(p)) < s.Rules.HandLimit {
			s.draw(p, rng)
		}
	}
}

func (s *State) draw(p Player, rng *rand.Rand) {
	card := s.DrawRandomCard(p, rng)
	if card == nil {
		return
	}
	s.setHand(p, append(s.Hand(p), card))
}

// DrawRandomCard instantiates a template picked uniformly from the catalog.
// Spells are only drawn when spell play is enabled.
func (s *State) DrawRandomCard(p Player, rng *rand.Rand) Card {
	if s.Catalog == nil {
		return nil
	}
	pool := len(s.Catalog.Units)
	if s.Rules.EnableSpells {
		pool += len(s.Catalog.Spells)
	}
	if pool == 0 {
		return nil
	}
	i := rng.Intn(pool)
	if i < len(s.Catalog.Units) {
		return s.NewUnit(s.Catalog.Units[i], p)
	}
	return s.NewSpell(s.Catalog.Spells[i-len(s.Catalog.Units)], p)
}

// EndPhase clears every provoke effect.
func (s *State) EndPhase() {
	for _, u := range s.ActiveUnits {
		u.Provoked = false
		u.ProvokedBy = 0
	}
}

func (s *State) SwitchTurn() {
	s.CurrentTurn = s.CurrentTurn.Opponent()
	s.TurnNumber++
	s.addSupply(s.CurrentTurn, s.Rules.SupplyPerTurn)
}

// FinishTurn runs the action, advance, draw and end phases, then hands the
// turn to the opponent.
func (s *State) FinishTurn(rng *rand.Rand) {
	s.ActionPhase()
	if s.PerformAdvanceChecks() {
		log.Trace().Msgf("state %s: %s advanced, scale %d", s.ID, s.CurrentTurn, s.Scale)
	}
	s.DrawPhase(rng)
	s.EndPhase()
	s.SwitchTurn()
}

func (s *State) String() string {
	return fmt.Sprintf("State{%s turn=%d player=%s scale=%d supply=%d/%d hands=%d/%d units=%d}",
		s.ID, s.TurnNumber, s.CurrentTurn, s.Scale, s.Player1Supply, s.Player2Supply,
		len(s.Player1Hand), len(s.Player2Hand), len(s.ActiveUnits))
}
