package engine

import (
	"fmt"
	"strings"
)

// MaxPiece is the default winning tile value.
const MaxPiece = 2048

// Model is the state of one 2048 game: the board plus score bookkeeping.
//
// Model is not safe for concurrent use.
type Model struct {
	board    *Board
	score    int
	maxScore int
	gameOver bool
	maxPiece int

	listeners []func(*Model)
}

// NewModel creates a game on an empty size x size board with score 0. A
// maxPiece of zero or less selects MaxPiece.
func NewModel(size, maxPiece int) *Model {
	if maxPiece <= 0 {
		maxPiece = MaxPiece
	}
	return &Model{
		board:    NewBoard(size),
		maxPiece: maxPiece,
	}
}

// NewModelFromValues creates a game whose tiles are given by values, indexed
// [row][col] with [0][0] the lower-left cell. Zero means empty.
func NewModelFromValues(values [][]int, score, maxScore int, gameOver bool, maxPiece int) (*Model, error) {
	size := len(values)
	m := NewModel(size, maxPiece)
	for row, line := range values {
		if len(line) != size {
			return nil, fmt.Errorf("row %d has %d values, want %d", row, len(line), size)
		}
		for col, v := range line {
			if v == 0 {
				continue
			}
			if v < 0 {
				return nil, fmt.Errorf("negative tile value %d at (%d, %d)", v, col, row)
			}
			m.board.cells[col][row] = NewTile(v, col, row)
		}
	}
	m.score = score
	m.maxScore = maxScore
	m.gameOver = gameOver
	return m, nil
}

// OnChange registers fn to be called after any operation that changes the
// game.
func (m *Model) OnChange(fn func(*Model)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Model) notify() {
	for _, fn := range m.listeners {
		fn(m)
	}
}

func (m *Model) Size() int     { return m.board.Size() }
func (m *Model) Score() int    { return m.score }
func (m *Model) MaxPiece() int { return m.maxPiece }

// MaxScore returns the best score so far. It is only updated when the game
// is found to be over.
func (m *Model) MaxScore() int { return m.maxScore }

// TileAt returns the tile at (col, row), or nil if the cell is empty.
func (m *Model) TileAt(col, row int) (*Tile, error) {
	return m.board.TileAt(col, row)
}

// IsEmptyAt reports whether (col, row) is an empty cell on the board.
func (m *Model) IsEmptyAt(col, row int) bool {
	return m.board.IsEmptyAt(col, row)
}

// GameOver reports whether the game has ended, recording the score as the
// max score if so.
func (m *Model) GameOver() bool {
	m.checkGameOver()
	if m.gameOver && m.score > m.maxScore {
		m.maxScore = m.score
	}
	return m.gameOver
}

// Clear empties the board and resets the score. The max score is kept.
func (m *Model) Clear() {
	m.score = 0
	m.gameOver = false
	m.board.Clear()
	m.notify()
}

// AddTile places t on the board. The cell must be empty.
func (m *Model) AddTile(t *Tile) error {
	if err := m.board.AddTile(t); err != nil {
		return err
	}
	m.checkGameOver()
	m.notify()
	return nil
}

// Tilt slides every tile toward side, merging equal tiles that collide, and
// reports whether any tile moved or merged.
//
//  1. Two equal tiles adjacent in the direction of motion merge into one tile
//     of twice the value, and that value is added to the score.
//  2. A tile that is the result of a merge does not merge again in the same
//     tilt.
//  3. Of three equal adjacent tiles, the leading two merge and the trailing
//     one does not.
func (m *Model) Tilt(side Side) bool {
	if !side.Valid() {
		return false
	}

	m.board.resetMerged()
	m.board.setViewingPerspective(side)
	changed := false
	for col := 0; col < m.board.Size(); col++ {
		delta, moved := m.tiltColumn(col)
		m.score += delta
		changed = changed || moved
	}
	m.board.setViewingPerspective(North)

	m.checkGameOver()
	if changed {
		m.notify()
	}
	return changed
}

// tiltColumn moves the tiles of one viewed column upward, working from the
// top row down. It returns the score gained and whether anything changed.
func (m *Model) tiltColumn(col int) (int, bool) {
	b := m.board
	size := b.Size()
	delta := 0
	changed := false

	for row := size - 2; row >= 0; row-- {
		t := b.tile(col, row)
		if t == nil {
			continue
		}

		target := row
		for target+1 < size && b.tile(col, target+1) == nil {
			target++
		}

		if target+1 < size {
			above := b.tile(col, target+1)
			if above.value == t.value && !above.merged {
				b.move(col, target+1, t)
				delta += 2 * t.value
				changed = true
				continue
			}
		}

		if target != row {
			b.move(col, target, t)
			changed = true
		}
	}
	return delta, changed
}

func (m *Model) checkGameOver() {
	m.gameOver = checkGameOver(m.board, m.maxPiece)
}

func checkGameOver(b *Board, maxPiece int) bool {
	return maxTileExists(b, maxPiece) || !atLeastOneMoveExists(b)
}

// emptySpaceExists reports whether any cell on b is empty.
func emptySpaceExists(b *Board) bool {
	for col := 0; col < b.Size(); col++ {
		for row := 0; row < b.Size(); row++ {
			if b.tile(col, row) == nil {
				return true
			}
		}
	}
	return false
}

// maxTileExists reports whether any tile on b has the winning value.
func maxTileExists(b *Board, maxPiece int) bool {
	found := false
	b.each(func(t *Tile) {
		if t.value == maxPiece {
			found = true
		}
	})
	return found
}

// atLeastOneMoveExists reports whether some tilt could change b: there is
// an empty cell, or two orthogonally adjacent tiles share a value.
func atLeastOneMoveExists(b *Board) bool {
	if emptySpaceExists(b) {
		return true
	}
	size := b.Size()
	for col := 0; col < size; col++ {
		for row := 0; row < size; row++ {
			v := b.tile(col, row).value
			if sameValueAt(b, col+1, row, v) || sameValueAt(b, col, row+1, v) {
				return true
			}
		}
	}
	return false
}

// sameValueAt reports whether (col, row) holds a tile of value v. Empty and
// off-board cells never match.
func sameValueAt(b *Board, col, row, v int) bool {
	if !b.inBounds(col, row) {
		return false
	}
	t := b.tile(col, row)
	return t != nil && t.value == v
}

// Clone returns a deep copy of m without its change listeners.
func (m *Model) Clone() *Model {
	return &Model{
		board:    m.board.clone(),
		score:    m.score,
		maxScore: m.maxScore,
		gameOver: m.gameOver,
		maxPiece: m.maxPiece,
	}
}

// Values returns the tile values row by row from the top row down; empty
// cells are 0.
func (m *Model) Values() [][]int {
	size := m.Size()
	grid := make([][]int, size)
	for i := range grid {
		row := size - 1 - i
		grid[i] = make([]int, size)
		for col := 0; col < size; col++ {
			if t := m.board.tile(col, row); t != nil {
				grid[i][col] = t.value
			}
		}
	}
	return grid
}

// MaxTile returns the largest tile value on the board, or 0 if it is empty.
func (m *Model) MaxTile() int {
	best := 0
	m.board.each(func(t *Tile) {
		if t.value > best {
			best = t.value
		}
	})
	return best
}

// EmptyCells returns the (col, row) pairs of every empty cell, column-major.
func (m *Model) EmptyCells() [][2]int {
	var empty [][2]int
	for col := 0; col < m.Size(); col++ {
		for row := 0; row < m.Size(); row++ {
			if m.board.tile(col, row) == nil {
				empty = append(empty, [2]int{col, row})
			}
		}
	}
	return empty
}

// String renders the board from the top row down followed by the score
// line, for debugging.
func (m *Model) String() string {
	var out strings.Builder
	out.WriteString("\n[\n")
	for row := m.Size() - 1; row >= 0; row-- {
		for col := 0; col < m.Size(); col++ {
			if t := m.board.tile(col, row); t == nil {
				out.WriteString("|    ")
			} else {
				fmt.Fprintf(&out, "|%4d", t.value)
			}
		}
		out.WriteString("|\n")
	}
	over := "not over"
	if m.GameOver() {
		over = "over"
	}
	fmt.Fprintf(&out, "] %d (max: %d) (game is %s) \n", m.score, m.maxScore, over)
	return out.String()
}

// Equal reports whether m and other render identically.
func (m *Model) Equal(other *Model) bool {
	if other == nil {
		return false
	}
	return m.String() == other.String()
}
