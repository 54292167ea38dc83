package montecarlo

import (
	"math/rand"

	"github.com/mlund/cppm-generator/internal/energy"
	"github.com/mlund/cppm-generator/internal/sphere"
)

// MoveStats reports the bookkeeping of one tracked move.
type MoveStats struct {
	Name       string
	Attempted  int
	Acceptance float64
}

// Propagator holds the registered moves and picks one uniformly at
// random per step.
type Propagator struct {
	moves []*Tracked
}

// NewPropagator registers the given moves in order.
func NewPropagator(moves ...Move) *Propagator {
	p := &Propagator{}
	for _, m := range moves {
		p.Push(m)
	}
	return p
}

// Push registers a move.
func (p *Propagator) Push(m Move) {
	p.moves = append(p.moves, NewTracked(m))
}

// Step applies one randomly selected move.
func (p *Propagator) Step(h energy.Hamiltonian, particles []sphere.Particle, rng *rand.Rand) (bool, error) {
	if len(p.moves) == 0 {
		return false, ErrNoMoves
	}
	m := p.moves[rng.Intn(len(p.moves))]
	accepted, err := m.Apply(h, particles, rng)
	if err != nil {
		return false, &MoveError{Move: m.Name(), Err: err}
	}
	return accepted, nil
}

// Moves lists the registered move names in registration order.
func (p *Propagator) Moves() []string {
	names := make([]string, 0, len(p.moves))
	for _, m := range p.moves {
		names = append(names, m.Name())
	}
	return names
}

// Acceptance returns the acceptance ratio of the named move, zero when
// the name is unknown.
func (p *Propagator) Acceptance(name string) float64 {
	for _, m := range p.moves {
		if m.Name() == name {
			return m.Acceptance()
		}
	}
	return 0
}

// Stats lists move statistics in registration order.
func (p *Propagator) Stats() []MoveStats {
	stats := make([]MoveStats, 0, len(p.moves))
	for _, m := range p.moves {
		stats = append(stats, MoveStats{
			Name:       m.Name(),
			Attempted:  m.Attempted(),
			Acceptance: m.Acceptance(),
		})
	}
	return stats
}

// Tune applies fn to every registered move, letting callers adjust move
// parameters at runtime.
func (p *Propagator) Tune(fn func(Move)) {
	for _, m := range p.moves {
		fn(m.Move)
	}
}
