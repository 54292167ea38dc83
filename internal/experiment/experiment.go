// Package experiment assembles and drives Monte Carlo runs.
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlund/cppm-generator/internal/analysis"
	"github.com/mlund/cppm-generator/internal/config"
	"github.com/mlund/cppm-generator/internal/energy"
	"github.com/mlund/cppm-generator/internal/montecarlo"
	"github.com/mlund/cppm-generator/internal/sphere"
)

// Sample is one point of the sampled trace.
type Sample struct {
	Step   int     `json:"step"`
	Energy float64 `json:"energy"` // total system energy (kT)
	Dipole float64 `json:"dipole"` // |μ| (eÅ)
}

// Result carries everything a finished run produced.
type Result struct {
	Config     *config.Config
	Particles  []sphere.Particle
	Samples    []Sample
	Acceptance []montecarlo.MoveStats
	Moments    *analysis.Moments
	Elapsed    time.Duration
}

// Experiment owns one Monte Carlo run: the particle set, the
// Hamiltonian, the propagator and the sampling plumbing.
type Experiment struct {
	cfg         *config.Config
	particles   []sphere.Particle
	hamiltonian energy.Hamiltonian
	propagator  *montecarlo.Propagator
	moments     *analysis.Moments
	rng         *rand.Rand
}

// New validates cfg and assembles the run through the registry. A zero
// seed is replaced by a time-derived one and written back into cfg so
// stored runs stay replayable.
func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	particles, err := sphere.Generate(cfg.Radius, cfg.Particles, cfg.Plus, cfg.Minus, rng)
	if err != nil {
		return nil, err
	}

	var hamiltonian energy.Hamiltonian
	for _, name := range cfg.Terms {
		term, err := registry.GetTerm(name, cfg)
		if err != nil {
			return nil, err
		}
		hamiltonian = append(hamiltonian, term)
	}

	propagator := montecarlo.NewPropagator()
	for _, name := range cfg.Moves {
		move, err := registry.GetMove(name, cfg)
		if err != nil {
			return nil, err
		}
		propagator.Push(move)
	}

	return &Experiment{
		cfg:         cfg,
		particles:   particles,
		hamiltonian: hamiltonian,
		propagator:  propagator,
		moments:     analysis.NewMoments(),
		rng:         rng,
	}, nil
}

// Run drives the full Monte Carlo loop. onStep, when non-nil, is called
// after every step with the 1-based step count.
func (e *Experiment) Run(ctx context.Context, onStep func(step int)) (*Result, error) {
	start := time.Now()

	// Charge-weighted moments are undefined for all-neutral systems.
	sampleMoments := e.cfg.Plus+e.cfg.Minus > 0

	var samples []Sample
	if e.cfg.SampleEvery > 0 {
		samples = make([]Sample, 0, e.cfg.Steps/e.cfg.SampleEvery+1)
	}

	for step := 0; step < e.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if _, err := e.propagator.Step(e.hamiltonian, e.particles, e.rng); err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}

		if sampleMoments && step >= e.cfg.Equilibration {
			if err := e.moments.Sample(e.particles); err != nil {
				return nil, fmt.Errorf("step %d: %w", step, err)
			}
		}
		if e.cfg.SampleEvery > 0 && step%e.cfg.SampleEvery == 0 {
			u, err := e.hamiltonian.Energy(e.particles, nil)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", step, err)
			}
			samples = append(samples, Sample{
				Step:   step,
				Energy: u,
				Dipole: r3.Norm(analysis.DipoleMoment(e.particles)),
			})
		}
		if onStep != nil {
			onStep(step + 1)
		}
	}

	return &Result{
		Config:     e.cfg,
		Particles:  e.particles,
		Samples:    samples,
		Acceptance: e.propagator.Stats(),
		Moments:    e.moments,
		Elapsed:    time.Since(start),
	}, nil
}

// Advance runs n steps without sampling. The live view drives the
// simulation through this.
func (e *Experiment) Advance(n int) error {
	for i := 0; i < n; i++ {
		if _, err := e.propagator.Step(e.hamiltonian, e.particles, e.rng); err != nil {
			return err
		}
	}
	return nil
}

// Energy is the current full-system energy in kT.
func (e *Experiment) Energy() (float64, error) {
	return e.hamiltonian.Energy(e.particles, nil)
}

// Particles exposes the live particle slice; callers must not mutate
// it.
func (e *Experiment) Particles() []sphere.Particle {
	return e.particles
}

// Stats lists the propagator's move statistics.
func (e *Experiment) Stats() []montecarlo.MoveStats {
	return e.propagator.Stats()
}

// Config returns the run configuration.
func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// Reshuffle re-randomizes every particle position.
func (e *Experiment) Reshuffle() {
	for i := range e.particles {
		e.particles[i].RandomAngles(e.rng)
	}
}

// TuneMoves applies fn to every registered move.
func (e *Experiment) TuneMoves(fn func(montecarlo.Move)) {
	e.propagator.Tune(fn)
}
