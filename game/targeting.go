package game

// columnReach is how many columns toward the enemy each range covers.
var columnReach = map[ActionRange]int{
	Melee:  1,
	Reach:  2,
	Ranged: 3,
}

// rowOrder lists the rows an action scans from row y: the unit's own row
// first, then the row above, then the row below.
func rowOrder(y int) []int {
	rows := make([]int, 0, 3)
	for _, r := range []int{y, y + 1, y - 1} {
		if r >= 0 && r < Rows {
			rows = append(rows, r)
		}
	}
	return rows
}

// globalRowOrder lists every row ordered by distance from y, ties broken
// toward the higher row.
func globalRowOrder(y int) []int {
	rows := []int{y}
	for d := 1; d < Rows; d++ {
		if y+d < Rows {
			rows = append(rows, y+d)
		}
		if y-d >= 0 {
			rows = append(rows, y-d)
		}
	}
	return rows
}

// effectiveRange resolves the range an action uses from the unit's tile. A
// Ranged unit standing on its own frontline fights like a Reach unit.
func effectiveRange(u *Unit, action *ActionInfo) ActionRange {
	if action.Range == Ranged && u.Pos.X == u.Side.Frontline() {
		return Reach
	}
	return action.Range
}

// scanOrder returns the tiles an action examines from the unit's position,
// in priority order, before any occupancy filtering.
func scanOrder(u *Unit, r ActionRange) []Position {
	var tiles []Position
	dir := u.Side.Direction()

	if r == Global {
		var columns []int
		for x := u.Pos.X; x >= 0 && x < Columns; x += dir {
			columns = append(columns, x)
		}
		for x := u.Pos.X - dir; x >= 0 && x < Columns; x -= dir {
			columns = append(columns, x)
		}
		for _, x := range columns {
			for _, y := range globalRowOrder(u.Pos.Y) {
				tiles = append(tiles, Position{X: x, Y: y})
			}
		}
		return tiles
	}

	for step := 0; step <= columnReach[r]; step++ {
		x := u.Pos.X + step*dir
		if x < 0 || x >= Columns {
			break
		}
		for _, y := range rowOrder(u.Pos.Y) {
			tiles = append(tiles, Position{X: x, Y: y})
		}
	}
	return tiles
}

func eligible(u *Unit, occupant *Unit, targets Targets) bool {
	switch {
	case occupant == nil:
		return false
	case occupant == u:
		return targets.Self
	case occupant.Side == u.Side:
		return targets.Allies
	default:
		return targets.Enemies
	}
}

// ValidTiles returns the occupied tiles the unit's action may hit, in
// targeting priority order. A provoked unit can only hit its provoker.
func (s *State) ValidTiles(u *Unit, action *ActionInfo) []Position {
	if u.Provoked {
		if provoker := s.UnitBySerial(u.ProvokedBy); provoker != nil && provoker.OnBoard {
			return []Position{provoker.Pos}
		}
	}

	var tiles []Position
	for _, pos := range scanOrder(u, effectiveRange(u, action)) {
		if eligible(u, s.Grid.At(pos), action.Targets) {
			tiles = append(tiles, pos)
		}
	}
	return tiles
}

// TargetCards resolves the units an action affects. The first valid tile
// holds the primary target; Nova hits every valid tile instead. Cleave adds
// the attacker's neighbouring rows in the primary target's column and Burst
// adds every unit behind the primary target.
func (s *State) TargetCards(u *Unit, action *ActionInfo) []*Unit {
	tiles := s.ValidTiles(u, action)
	if len(tiles) == 0 {
		return nil
	}

	var targets []*Unit
	seen := make(map[*Unit]bool)
	add := func(target *Unit) {
		if target != nil && !seen[target] {
			seen[target] = true
			targets = append(targets, target)
		}
	}

	if action.Has(Nova) {
		for _, pos := range tiles {
			add(s.Grid.At(pos))
		}
		return targets
	}

	primary := tiles[0]
	add(s.Grid.At(primary))
	if action.Has(Cleave) {
		for _, y := range []int{u.Pos.Y - 1, u.Pos.Y + 1} {
			add(s.Grid.At(Position{X: primary.X, Y: y}))
		}
	}
	if action.Has(Burst) {
		dir := u.Side.Direction()
		for x := primary.X + dir; x >= 0 && x < Columns; x += dir {
			add(s.Grid.At(Position{X: x, Y: primary.Y}))
		}
	}
	return targets
}
