package engine

import "fmt"

// Board is a square grid of optional tiles.
//
// Reads and writes go through the current viewing perspective: with the
// perspective set to a side, coordinates are interpreted as if that side were
// north. Tiles always store their real board coordinates.
type Board struct {
	size        int
	cells       [][]*Tile // [col][row], real coordinates
	perspective Side
}

// NewBoard creates an empty size x size board viewed from the north.
func NewBoard(size int) *Board {
	cells := make([][]*Tile, size)
	for c := range cells {
		cells[c] = make([]*Tile, size)
	}
	return &Board{size: size, cells: cells, perspective: North}
}

// Size returns the number of cells on one side of the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) inBounds(col, row int) bool {
	return col >= 0 && col < b.size && row >= 0 && row < b.size
}

// TileAt returns the tile seen at (col, row), or nil if the cell is empty.
func (b *Board) TileAt(col, row int) (*Tile, error) {
	if !b.inBounds(col, row) {
		return nil, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, col, row, b.size, b.size)
	}
	return b.tile(col, row), nil
}

// IsEmptyAt reports whether no tile is seen at (col, row). Cells outside the
// board are never empty.
func (b *Board) IsEmptyAt(col, row int) bool {
	return b.inBounds(col, row) && b.tile(col, row) == nil
}

// AddTile places t at its own (real) coordinates. The board is untouched if
// the position is outside the board or already occupied.
func (b *Board) AddTile(t *Tile) error {
	if !b.inBounds(t.col, t.row) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, t.col, t.row, b.size, b.size)
	}
	if b.cells[t.col][t.row] != nil {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidState, t.col, t.row)
	}
	b.cells[t.col][t.row] = t
	return nil
}

// Clear removes every tile.
func (b *Board) Clear() {
	for c := range b.cells {
		for r := range b.cells[c] {
			b.cells[c][r] = nil
		}
	}
}

// setViewingPerspective makes subsequent coordinates relative to s.
func (b *Board) setViewingPerspective(s Side) {
	b.perspective = s
}

// tile reads the cell seen at (col, row) without bounds checks.
func (b *Board) tile(col, row int) *Tile {
	s := b.perspective
	return b.cells[s.Col(col, row, b.size)][s.Row(col, row, b.size)]
}

// move relocates t to the cell seen at (col, row) as one step: t leaves its
// old cell and a fresh tile takes the target. If the target is occupied the
// two merge and move reports true.
func (b *Board) move(col, row int, t *Tile) bool {
	s := b.perspective
	pcol, prow := s.Col(col, row, b.size), s.Row(col, row, b.size)
	if pcol == t.col && prow == t.row {
		return false
	}

	occupant := b.cells[pcol][prow]
	b.cells[t.col][t.row] = nil
	if occupant != nil {
		b.cells[pcol][prow] = t.mergedAt(pcol, prow)
		return true
	}
	b.cells[pcol][prow] = t.movedTo(pcol, prow)
	return false
}

// resetMerged clears the merged flag on every tile before a new tilt.
func (b *Board) resetMerged() {
	for c := range b.cells {
		for _, t := range b.cells[c] {
			if t != nil {
				t.merged = false
			}
		}
	}
}

// each calls fn for every tile in real coordinates.
func (b *Board) each(fn func(t *Tile)) {
	for c := range b.cells {
		for _, t := range b.cells[c] {
			if t != nil {
				fn(t)
			}
		}
	}
}

func (b *Board) clone() *Board {
	cp := NewBoard(b.size)
	b.each(func(t *Tile) {
		cp.cells[t.col][t.row] = &Tile{value: t.value, col: t.col, row: t.row, merged: t.merged}
	})
	cp.perspective = b.perspective
	return cp
}
