package bot

import (
	"math/rand"
	"time"
)

const defaultFedjaProbability = 0.2

// Selector draws the category for each posting cycle.
type Selector struct {
	fedjaProbability float64
	rng              *rand.Rand
}

// NewSelector creates a selector that picks the fedja category with the given
// probability. Values outside [0, 1] fall back to the default of 0.2.
func NewSelector(fedjaProbability float64, rng *rand.Rand) *Selector {
	if fedjaProbability < 0 || fedjaProbability > 1 {
		fedjaProbability = defaultFedjaProbability
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{
		fedjaProbability: fedjaProbability,
		rng:              rng,
	}
}

// Next consumes one random draw and returns the category for this cycle.
func (s *Selector) Next() Category {
	if s.rng.Float64() < s.fedjaProbability {
		return CategoryFedja
	}
	return CategoryGeneral
}
