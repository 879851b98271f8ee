package engine

import (
	"fmt"
	"strings"
)

// Side is one of the four directions a board can be tilted toward.
type Side int

const (
	North Side = iota
	East
	South
	West
)

// sideTransform holds the coefficients mapping viewed coordinates to board
// coordinates when the given side is treated as "up".
type sideTransform struct {
	col0, row0 int
	dcol, drow int
}

var transforms = [...]sideTransform{
	North: {col0: 0, row0: 0, dcol: 0, drow: 1},
	East:  {col0: 0, row0: 1, dcol: 1, drow: 0},
	South: {col0: 1, row0: 1, dcol: 0, drow: -1},
	West:  {col0: 1, row0: 0, dcol: -1, drow: 0},
}

var sideNames = [...]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// Sides lists every direction in a fixed order.
var Sides = []Side{North, East, South, West}

func (s Side) Valid() bool {
	return s >= North && s <= West
}

func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("side(%d)", int(s))
	}
	return sideNames[s]
}

// Col returns the board column of the cell seen at (c, r) on a board of the
// given size when s is viewed as north.
func (s Side) Col(c, r, size int) int {
	t := transforms[s]
	return t.col0*(size-1) + c*t.drow + r*t.dcol
}

// Row returns the board row of the cell seen at (c, r) on a board of the
// given size when s is viewed as north.
func (s Side) Row(c, r, size int) int {
	t := transforms[s]
	return t.row0*(size-1) - c*t.dcol + r*t.drow
}

// ParseSide converts a direction name to a Side. Compass names and the
// screen aliases up, right, down and left are accepted, case-insensitively.
func ParseSide(direction string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "north", "up", "n":
		return North, nil
	case "east", "right", "e":
		return East, nil
	case "south", "down", "s":
		return South, nil
	case "west", "left", "w":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}
