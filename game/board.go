package game

import "fmt"

const (
	Columns = 6
	Rows    = 5
)

// Player identifies a side of the board. Player1 owns columns 0-2 and
// Player2 owns columns 3-5.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) String() string {
	if p == NoPlayer {
		return "None"
	}
	return fmt.Sprintf("Player%d", int(p))
}

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Direction is the column step that moves toward the opponent's side.
func (p Player) Direction() int {
	if p == Player1 {
		return 1
	}
	return -1
}

// Half returns the columns [start, end) belonging to the player.
func (p Player) Half() (start, end int) {
	if p == Player1 {
		return 0, 3
	}
	return 3, Columns
}

// Frontline is the player's own column facing the opponent.
func (p Player) Frontline() int {
	if p == Player1 {
		return 2
	}
	return 3
}

func (p Player) owns(x int) bool {
	start, end := p.Half()
	return x >= start && x < end
}

// Position is a (column, row) pair on the board.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Columns && p.Y >= 0 && p.Y < Rows
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func IsFrontline(p Position) bool {
	return p.X == 2 || p.X == 3
}

// Board is the tile grid indexed [column][row]. A nil tile is empty.
type Board [Columns][Rows]*Unit

func (b *Board) At(p Position) *Unit {
	if !p.InBounds() {
		return nil
	}
	return b[p.X][p.Y]
}

func (b *Board) set(p Position, u *Unit) {
	b[p.X][p.Y] = u
}

// UnitsInColumn lists the occupants of column x from the top row down.
func (b *Board) UnitsInColumn(x int) []*Unit {
	var units []*Unit
	if x < 0 || x >= Columns {
		return units
	}
	for y := Rows - 1; y >= 0; y-- {
		if u := b[x][y]; u != nil {
			units = append(units, u)
		}
	}
	return units
}

// UnitsInColumns lists the occupants of columns [start, end).
func (b *Board) UnitsInColumns(start, end int) []*Unit {
	var units []*Unit
	for x := start; x < end; x++ {
		units = append(units, b.UnitsInColumn(x)...)
	}
	return units
}
