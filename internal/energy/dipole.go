package energy

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlund/cppm-generator/internal/sphere"
)

// DipoleRestraint biases the magnitude of the system dipole moment
// toward Target with a harmonic penalty. The bias is a global property,
// so every accepted subset size evaluates the full particle set; the
// difference between two evaluations still equals the true energy
// change of a move.
type DipoleRestraint struct {
	Spring float64 // kT/(eÅ)²
	Target float64 // eÅ
}

// Energy is ½k(|μ|-μ₀)².
func (d DipoleRestraint) Energy(particles []sphere.Particle, indices []int) (float64, error) {
	if err := checkIndices(particles, indices); err != nil {
		return 0, err
	}
	if len(indices) > 2 {
		return 0, fmt.Errorf("%w: %d", ErrIndexSubset, len(indices))
	}
	var mu r3.Vec
	for i := range particles {
		mu = r3.Add(mu, r3.Scale(particles[i].Charge, particles[i].Pos))
	}
	diff := r3.Norm(mu) - d.Target
	return 0.5 * d.Spring * diff * diff, nil
}
