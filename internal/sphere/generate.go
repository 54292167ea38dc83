package sphere

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrTotalCount flags a non-positive particle count.
	ErrTotalCount = errors.New("sphere: total particle count must be positive")
	// ErrChargeCount flags more charged particles than the total allows.
	ErrChargeCount = errors.New("sphere: charged particles exceed total count")
)

// Generate builds total particles of the given radius: the first plus
// carry +1e, the last minus carry -1e and the rest stay neutral. Every
// particle is then placed at a random surface position, in slice order.
func Generate(radius float64, total, plus, minus int, rng *rand.Rand) ([]Particle, error) {
	if total < 1 {
		return nil, ErrTotalCount
	}
	if plus < 0 || minus < 0 {
		return nil, fmt.Errorf("sphere: negative charge count (%d plus, %d minus)", plus, minus)
	}
	if plus+minus > total {
		return nil, fmt.Errorf("%w: %d+%d > %d", ErrChargeCount, plus, minus, total)
	}

	particles := make([]Particle, total)
	for i := range particles {
		particles[i].Radius = radius
	}
	for i := 0; i < plus; i++ {
		particles[i].Charge = 1.0
	}
	for i := total - minus; i < total; i++ {
		particles[i].Charge = -1.0
	}
	for i := range particles {
		particles[i].RandomAngles(rng)
	}
	return particles, nil
}
