package montecarlo

import (
	"math/rand"

	"github.com/mlund/cppm-generator/internal/energy"
	"github.com/mlund/cppm-generator/internal/sphere"
)

// SwapCharges exchanges the charges of two distinct random particles.
// Positions are never touched.
type SwapCharges struct{}

func (SwapCharges) Name() string { return "swap" }

// Apply draws two distinct particles. Equal charges make the swap a
// no-op and count as accepted without any energy evaluation.
func (SwapCharges) Apply(h energy.Hamiltonian, particles []sphere.Particle, rng *rand.Rand) (bool, error) {
	if len(particles) < 2 {
		return false, ErrTooFewParticles
	}
	first, second := randomPair(len(particles), rng)
	if particles[first].Charge == particles[second].Charge {
		return true, nil
	}

	pair := []int{first, second}
	oldEnergy, err := h.Energy(particles, pair)
	if err != nil {
		return false, err
	}
	swapCharge(particles, first, second)
	newEnergy, err := h.Energy(particles, pair)
	if err != nil {
		swapCharge(particles, first, second)
		return false, err
	}

	if !Accept(newEnergy-oldEnergy, rng) {
		swapCharge(particles, first, second)
		return false, nil
	}
	return true, nil
}

func swapCharge(particles []sphere.Particle, first, second int) {
	particles[first].Charge, particles[second].Charge =
		particles[second].Charge, particles[first].Charge
}

// randomPair draws two distinct indices in [0, n); the second draw
// skips the first.
func randomPair(n int, rng *rand.Rand) (int, int) {
	first := rng.Intn(n)
	second := rng.Intn(n - 1)
	if second >= first {
		second++
	}
	return first, second
}
