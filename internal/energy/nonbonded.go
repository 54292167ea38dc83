package energy

import (
	"fmt"

	"github.com/mlund/cppm-generator/internal/sphere"
)

// Term is one contribution to the system Hamiltonian. See the package
// documentation for the index subset contract.
type Term interface {
	Energy(particles []sphere.Particle, indices []int) (float64, error)
}

// Nonbonded sums a pair potential over particle pairs.
type Nonbonded struct {
	Pair PairPotential
}

// NewNonbonded returns a pairwise-additive term over pair.
func NewNonbonded(pair PairPotential) *Nonbonded {
	return &Nonbonded{Pair: pair}
}

// Energy dispatches on the number of indices.
func (n *Nonbonded) Energy(particles []sphere.Particle, indices []int) (float64, error) {
	if err := checkIndices(particles, indices); err != nil {
		return 0, err
	}
	switch len(indices) {
	case 0:
		return n.systemEnergy(particles)
	case 1:
		return n.particleEnergy(particles, indices[0])
	case 2:
		return n.swapEnergy(particles, indices[0], indices[1])
	default:
		return 0, fmt.Errorf("%w: %d", ErrIndexSubset, len(indices))
	}
}

// systemEnergy visits each pair once, lower index second.
func (n *Nonbonded) systemEnergy(particles []sphere.Particle) (float64, error) {
	var energy float64
	for i := 1; i < len(particles); i++ {
		for j := 0; j < i; j++ {
			u, err := n.Pair.Energy(&particles[i], &particles[j])
			if err != nil {
				return 0, fmt.Errorf("pair (%d,%d): %w", i, j, err)
			}
			energy += u
		}
	}
	return energy, nil
}

// particleEnergy sums the interactions of one particle with all others.
func (n *Nonbonded) particleEnergy(particles []sphere.Particle, index int) (float64, error) {
	var energy float64
	for i := range particles {
		if i == index {
			continue
		}
		u, err := n.Pair.Energy(&particles[i], &particles[index])
		if err != nil {
			return 0, fmt.Errorf("pair (%d,%d): %w", i, index, err)
		}
		energy += u
	}
	return energy, nil
}

// swapEnergy is the pair energy of (first, second) plus both particles'
// interactions with the rest of the system.
func (n *Nonbonded) swapEnergy(particles []sphere.Particle, first, second int) (float64, error) {
	energy, err := n.Pair.Energy(&particles[first], &particles[second])
	if err != nil {
		return 0, fmt.Errorf("pair (%d,%d): %w", first, second, err)
	}
	for i := range particles {
		if i == first || i == second {
			continue
		}
		u, err := n.Pair.Energy(&particles[i], &particles[first])
		if err != nil {
			return 0, fmt.Errorf("pair (%d,%d): %w", i, first, err)
		}
		energy += u
		u, err = n.Pair.Energy(&particles[i], &particles[second])
		if err != nil {
			return 0, fmt.Errorf("pair (%d,%d): %w", i, second, err)
		}
		energy += u
	}
	return energy, nil
}

func checkIndices(particles []sphere.Particle, indices []int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= len(particles) {
			return fmt.Errorf("%w: %d (have %d particles)", ErrIndexRange, idx, len(particles))
		}
	}
	return nil
}
