package main

import (
	"math"
	"math/bits"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// noTarget keeps lookahead models from ending the game on a winning tile.
const noTarget = 1 << 30

// Weights for evaluate.
const (
	emptyWeight    = 2.7
	cornerWeight   = 1.0
	monotonyWeight = 1.0
	followUpDecay  = 0.5
)

// Strategy picks tilts by looking two moves ahead on a copy of the board.
// Spawns are ignored, so the second ply is a best case.
type Strategy struct {
	Depth int
}

func NewStrategy() *Strategy {
	return &Strategy{Depth: 2}
}

// modelFromGrid builds a model from a top-down snapshot grid.
func modelFromGrid(grid [][]int, score int) (*engine.Model, error) {
	values := make([][]int, len(grid))
	for i, row := range grid {
		values[len(grid)-1-i] = row
	}
	return engine.NewModelFromValues(values, score, 0, false, noTarget)
}

// NextMove returns the direction to tilt next, or "" if no tilt changes
// the board.
func (s *Strategy) NextMove(state *engine.GameState) string {
	if state == nil || len(state.Grid) == 0 {
		return ""
	}
	m, err := modelFromGrid(state.Grid, state.Score)
	if err != nil {
		return ""
	}

	best, bestScore := "", math.Inf(-1)
	for _, side := range engine.Sides {
		value, ok := s.search(m, side, s.Depth)
		if ok && value > bestScore {
			best, bestScore = side.String(), value
		}
	}
	return best
}

// search tilts a copy of m toward side and returns the points gained plus
// the position value, searching depth-1 further tilts.
func (s *Strategy) search(m *engine.Model, side engine.Side, depth int) (float64, bool) {
	next := m.Clone()
	if !next.Tilt(side) {
		return 0, false
	}
	gained := float64(next.Score() - m.Score())
	value := gained + evaluate(next)

	if depth > 1 {
		follow := math.Inf(-1)
		for _, s2 := range engine.Sides {
			if v, ok := s.search(next, s2, depth-1); ok && v > follow {
				follow = v
			}
		}
		if !math.IsInf(follow, -1) {
			value += followUpDecay * follow
		}
	}
	return value, true
}

func log2(v int) float64 {
	if v <= 0 {
		return 0
	}
	return float64(bits.Len(uint(v)) - 1)
}

// evaluate scores a position: free squares, the largest tile sitting in a
// corner and rows and columns that are monotonic.
func evaluate(m *engine.Model) float64 {
	grid := m.Values()
	size := len(grid)

	value := emptyWeight * float64(len(m.EmptyCells())) * log2(m.MaxTile())

	maxTile := m.MaxTile()
	for _, corner := range [][2]int{{0, 0}, {0, size - 1}, {size - 1, 0}, {size - 1, size - 1}} {
		if grid[corner[0]][corner[1]] == maxTile {
			value += cornerWeight * log2(maxTile) * float64(size)
			break
		}
	}

	value -= monotonyWeight * monotonyPenalty(grid)
	return value
}

// monotonyPenalty sums, per row and column, the smaller of the total
// increase and total decrease in log2 tile values.
func monotonyPenalty(grid [][]int) float64 {
	size := len(grid)
	line := func(at func(i int) int) float64 {
		var up, down float64
		for i := 0; i+1 < size; i++ {
			a, b := log2(at(i)), log2(at(i+1))
			if a < b {
				up += b - a
			} else {
				down += a - b
			}
		}
		return math.Min(up, down)
	}

	var penalty float64
	for r := 0; r < size; r++ {
		penalty += line(func(i int) int { return grid[r][i] })
	}
	for c := 0; c < size; c++ {
		penalty += line(func(i int) int { return grid[i][c] })
	}
	return penalty
}
