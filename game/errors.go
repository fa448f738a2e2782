package game

import "errors"

var (
	ErrInvalidGrid     = errors.New("invalid grid dimensions")
	ErrUnknownTemplate = errors.New("unknown card template")
	ErrInvalidPosition = errors.New("position out of bounds")
	ErrOccupiedTile    = errors.New("tile already occupied")
	ErrInvalidHealth   = errors.New("health out of range")
	ErrInvalidOwner    = errors.New("invalid card owner")
	ErrNotInHand       = errors.New("card not in hand")
	ErrSpellsDisabled  = errors.New("spell play is disabled")
	ErrIllegalMove     = errors.New("illegal move")
)
