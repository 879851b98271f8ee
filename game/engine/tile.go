package engine

// Tile is a numbered piece at a board position.
//
// Tiles are replaced rather than mutated when they move: each tilt gives every
// moved or merged tile a fresh identity. The only mutation is the merged flag,
// which the board manages for the duration of a tilt.
type Tile struct {
	value  int
	col    int
	row    int
	merged bool
}

// NewTile creates an unmerged tile with the given value at (col, row).
func NewTile(value, col, row int) *Tile {
	return &Tile{value: value, col: col, row: row}
}

func (t *Tile) Value() int   { return t.value }
func (t *Tile) Col() int     { return t.col }
func (t *Tile) Row() int     { return t.row }
func (t *Tile) Merged() bool { return t.merged }

// MarkMerged flags t as the product of a merge during the current tilt.
func (t *Tile) MarkMerged() {
	t.merged = true
}

// movedTo returns a copy of t at (col, row), keeping its merged flag.
func (t *Tile) movedTo(col, row int) *Tile {
	return &Tile{value: t.value, col: col, row: row, merged: t.merged}
}

// mergedAt returns the tile that results from t merging into (col, row).
func (t *Tile) mergedAt(col, row int) *Tile {
	next := &Tile{value: 2 * t.value, col: col, row: row}
	next.MarkMerged()
	return next
}
