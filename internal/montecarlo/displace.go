package montecarlo

import (
	"math/rand"

	"github.com/mlund/cppm-generator/internal/energy"
	"github.com/mlund/cppm-generator/internal/sphere"
)

// DefaultDisplacement is the angular disc radius used when no step is
// configured.
const DefaultDisplacement = 0.01

// DisplaceParticle moves one random particle on a disc in angle space
// and accepts or rejects the new position.
type DisplaceParticle struct {
	Step float64 // disc radius in angle units
}

// NewDisplaceParticle returns a displacement move; non-positive steps
// fall back to DefaultDisplacement.
func NewDisplaceParticle(step float64) *DisplaceParticle {
	if step <= 0 {
		step = DefaultDisplacement
	}
	return &DisplaceParticle{Step: step}
}

func (d *DisplaceParticle) Name() string { return "displace" }

// Apply picks a particle, evaluates its energy before and after a trial
// displacement and restores the exact prior state on rejection.
func (d *DisplaceParticle) Apply(h energy.Hamiltonian, particles []sphere.Particle, rng *rand.Rand) (bool, error) {
	if len(particles) == 0 {
		return false, ErrNoParticles
	}
	index := rng.Intn(len(particles))
	backup := particles[index]

	oldEnergy, err := h.Energy(particles, []int{index})
	if err != nil {
		return false, err
	}
	particles[index].DisplaceAngle(d.Step, rng)
	newEnergy, err := h.Energy(particles, []int{index})
	if err != nil {
		particles[index] = backup
		return false, err
	}

	if !Accept(newEnergy-oldEnergy, rng) {
		particles[index] = backup
		return false, nil
	}
	return true, nil
}
