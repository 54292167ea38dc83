package energy

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlund/cppm-generator/internal/sphere"
)

// PairPotential is the energy between two particles in units of kT.
type PairPotential interface {
	Energy(a, b *sphere.Particle) (float64, error)
}

const (
	softcoreStrength = 4.0 // kT
	softcoreDiameter = 4.0 // Å
)

// Coulomb combines electrostatics scaled by the Bjerrum length with a
// steep soft-core repulsion that keeps particles from overlapping.
type Coulomb struct {
	Bjerrum float64 // Bjerrum length (Å)
}

// NewCoulomb returns a Coulomb potential for the given Bjerrum length.
func NewCoulomb(bjerrum float64) Coulomb {
	return Coulomb{Bjerrum: bjerrum}
}

// Energy is u(r) = 4(σ/r)¹² + λB·q₁·q₂/r with σ fixed at 4 Å.
func (c Coulomb) Energy(a, b *sphere.Particle) (float64, error) {
	d := r3.Norm(r3.Sub(a.Pos, b.Pos))
	if d == 0 {
		return 0, ErrCoincident
	}
	x := softcoreDiameter / d
	x2 := x * x
	x6 := x2 * x2 * x2
	return softcoreStrength*x6*x6 + c.Bjerrum*a.Charge*b.Charge/d, nil
}
