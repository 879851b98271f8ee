package engine

import "errors"

var (
	// ErrOutOfBounds is returned for a coordinate outside [0, size).
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidState is returned when a tile is placed on an occupied cell.
	ErrInvalidState = errors.New("cell already occupied")

	ErrInvalidDirection = errors.New("invalid direction")
	ErrBoardFull        = errors.New("no empty cell available")
)
