package game

import (
	"math/rand"

	"github.com/recallab/tetromino/pkg/game/pieces"
)

// Spawner selects the next piece shape: uniformly at random, independently,
// with replacement, from the seven shapes. There is no bag or drought
// protection.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner with a seeded source. The same seed yields
// the same shape sequence.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next draws the next shape.
func (s *Spawner) Next() pieces.Shape {
	return pieces.Shape(s.rng.Intn(pieces.NumShapes))
}
