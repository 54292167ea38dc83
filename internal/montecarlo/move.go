package montecarlo

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlund/cppm-generator/internal/energy"
	"github.com/mlund/cppm-generator/internal/sphere"
)

var (
	// ErrNoMoves flags a propagator without registered moves.
	ErrNoMoves = errors.New("montecarlo: propagator has no moves")
	// ErrNoParticles flags a move on an empty particle slice.
	ErrNoParticles = errors.New("montecarlo: no particles to move")
	// ErrTooFewParticles flags a swap on fewer than two particles.
	ErrTooFewParticles = errors.New("montecarlo: swap needs at least two particles")
)

// Move proposes a change to the particle slice and applies the
// Metropolis criterion, reporting whether the proposal was accepted.
// An error means the state may not have advanced and the run should
// stop.
type Move interface {
	Name() string
	Apply(h energy.Hamiltonian, particles []sphere.Particle, rng *rand.Rand) (bool, error)
}

// MoveError ties a failed move application to the move's name.
type MoveError struct {
	Move string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s: %v", e.Move, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// Tracked wraps a move with acceptance bookkeeping.
type Tracked struct {
	Move
	attempted int
	accepted  int
}

// NewTracked wraps m.
func NewTracked(m Move) *Tracked {
	return &Tracked{Move: m}
}

// Apply delegates to the wrapped move and counts the outcome.
func (t *Tracked) Apply(h energy.Hamiltonian, particles []sphere.Particle, rng *rand.Rand) (bool, error) {
	accepted, err := t.Move.Apply(h, particles, rng)
	if err != nil {
		return false, err
	}
	t.attempted++
	if accepted {
		t.accepted++
	}
	return accepted, nil
}

// Attempted is the number of completed applications.
func (t *Tracked) Attempted() int { return t.attempted }

// Acceptance is the ratio of accepted to attempted applications, zero
// before the first attempt.
func (t *Tracked) Acceptance() float64 {
	if t.attempted == 0 {
		return 0
	}
	return float64(t.accepted) / float64(t.attempted)
}
