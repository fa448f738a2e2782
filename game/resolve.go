package game

import "github.com/rs/zerolog/log"

// TriggerAction fires the unit's current action. The action index only
// advances when the action found at least one target.
func (s *State) TriggerAction(u *Unit) bool {
	action := u.CurrentAction()
	if action == nil || !u.OnBoard {
		return false
	}
	targets := s.TargetCards(u, action)
	if len(targets) == 0 {
		return false
	}
	s.PerformAction(u, action, targets)
	u.advanceAction()
	return true
}

// PerformAction applies heal, damage and provoke to each target in turn.
func (s *State) PerformAction(u *Unit, action *ActionInfo, targets []*Unit) {
	for _, target := range targets {
		if !target.OnBoard {
			continue
		}
		if action.Has(Heal) {
			target.Heal(u.Power)
		}
		if action.Has(Damage) {
			s.performDamage(u, target, action)
		}
		if action.Has(Provoke) && target.OnBoard {
			target.Provoked = true
			target.ProvokedBy = u.Serial
		}
	}
}

func (s *State) performDamage(u *Unit, target *Unit, action *ActionInfo) {
	dmg := u.Power
	health := target.Health
	pos := target.Pos
	s.takeDamage(target, dmg, action.Has(DeathTouch))

	if action.Has(Overkill) && health < dmg {
		splash := Position{X: pos.X + u.Side.Direction(), Y: pos.Y}
		if behind := s.Grid.At(splash); behind != nil {
			s.takeDamage(behind, dmg-health, action.Has(DeathTouch))
		}
	}
	if action.Has(Drain) && u.OnBoard {
		u.Heal(dmg)
	}
}

func (s *State) takeDamage(target *Unit, dmg int, deathTouch bool) {
	target.Health -= dmg
	if deathTouch && target.Health > 0 {
		target.Health = 0
	}
	if target.Health <= 0 {
		log.Trace().Msgf("state %s: %v slain at %s", s.ID, target, target.Pos)
		s.removeUnit(target)
	}
}

// SpellTiles returns the tiles a spell centred on center covers, clamped to
// the board and restricted to the halves it may target.
func SpellTiles(spell *Spell, center Position) []Position {
	offX, offY := (spell.Area.W-1)/2, (spell.Area.H-1)/2
	minX, maxX := max(0, center.X-offX), min(Columns-1, center.X+offX+(1-spell.Area.W%2))
	minY, maxY := max(0, center.Y-offY), min(Rows-1, center.Y+offY+(1-spell.Area.H%2))

	targets := spell.Template.Targets
	var tiles []Position
	for x := minX; x <= maxX; x++ {
		own := spell.Side.owns(x)
		if (own && targets.Allies) || (!own && targets.Enemies) {
			for y := minY; y <= maxY; y++ {
				tiles = append(tiles, Position{X: x, Y: y})
			}
		}
	}
	return tiles
}

// PerformSpell applies the spell's damage and heal to every unit in its area.
func (s *State) PerformSpell(spell *Spell, center Position) {
	var targets []*Unit
	for _, pos := range SpellTiles(spell, center) {
		if u := s.Grid.At(pos); u != nil {
			targets = append(targets, u)
		}
	}
	for _, target := range targets {
		if !target.OnBoard {
			continue
		}
		if spell.Template.Has(Damage) {
			s.takeDamage(target, spell.Power, spell.Template.Has(DeathTouch))
		}
		if spell.Template.Has(Heal) && target.OnBoard {
			target.Heal(spell.Power)
		}
	}
}
