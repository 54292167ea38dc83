package energy

import "github.com/mlund/cppm-generator/internal/sphere"

// Hamiltonian is an ordered collection of energy terms. It satisfies
// Term itself, so terms can nest.
type Hamiltonian []Term

// Energy sums all terms for the given index subset.
func (h Hamiltonian) Energy(particles []sphere.Particle, indices []int) (float64, error) {
	var total float64
	for _, term := range h {
		u, err := term.Energy(particles, indices)
		if err != nil {
			return 0, err
		}
		total += u
	}
	return total, nil
}
