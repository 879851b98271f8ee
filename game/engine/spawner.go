package engine

import (
	"math/rand"
	"time"
)

// Spawner places new random tiles: a 4 with the configured probability,
// otherwise a 2, in a uniformly chosen empty cell.
type Spawner struct {
	rng             *rand.Rand
	fourProbability float64
}

// NewSpawner creates a spawner drawing from rng. A nil rng is seeded from
// the clock.
func NewSpawner(rng *rand.Rand, fourProbability float64) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{rng: rng, fourProbability: fourProbability}
}

// Spawn adds one random tile to m and returns it.
func (s *Spawner) Spawn(m *Model) (*Tile, error) {
	empty := m.EmptyCells()
	if len(empty) == 0 {
		return nil, ErrBoardFull
	}

	cell := empty[s.rng.Intn(len(empty))]
	value := 2
	if s.rng.Float64() < s.fourProbability {
		value = 4
	}

	t := NewTile(value, cell[0], cell[1])
	if err := m.AddTile(t); err != nil {
		return nil, err
	}
	return t, nil
}
