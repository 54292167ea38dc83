package experiment

import (
	"fmt"
	"sort"

	"github.com/mlund/cppm-generator/internal/config"
	"github.com/mlund/cppm-generator/internal/energy"
	"github.com/mlund/cppm-generator/internal/montecarlo"
)

// Registry maps configuration names to move and energy term
// constructors.
type Registry struct {
	moves map[string]func(cfg *config.Config) montecarlo.Move
	terms map[string]func(cfg *config.Config) energy.Term
}

// NewRegistry returns a registry with the built-in moves and terms.
func NewRegistry() *Registry {
	r := &Registry{
		moves: make(map[string]func(*config.Config) montecarlo.Move),
		terms: make(map[string]func(*config.Config) energy.Term),
	}

	r.moves["displace"] = func(cfg *config.Config) montecarlo.Move {
		return montecarlo.NewDisplaceParticle(cfg.Displacement)
	}
	r.moves["swap"] = func(cfg *config.Config) montecarlo.Move {
		return montecarlo.SwapCharges{}
	}

	r.terms["coulomb"] = func(cfg *config.Config) energy.Term {
		return energy.NewNonbonded(energy.NewCoulomb(cfg.Bjerrum))
	}
	r.terms["dipole-restraint"] = func(cfg *config.Config) energy.Term {
		return energy.DipoleRestraint{Spring: cfg.DipoleSpring, Target: cfg.DipoleTarget}
	}

	return r
}

// GetMove builds the named move from cfg.
func (r *Registry) GetMove(name string, cfg *config.Config) (montecarlo.Move, error) {
	fn, ok := r.moves[name]
	if !ok {
		return nil, fmt.Errorf("unknown move: %s", name)
	}
	return fn(cfg), nil
}

// GetTerm builds the named energy term from cfg.
func (r *Registry) GetTerm(name string, cfg *config.Config) (energy.Term, error) {
	fn, ok := r.terms[name]
	if !ok {
		return nil, fmt.Errorf("unknown term: %s", name)
	}
	return fn(cfg), nil
}

// ListMoves returns the registered move names, sorted.
func (r *Registry) ListMoves() []string {
	names := make([]string, 0, len(r.moves))
	for name := range r.moves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListTerms returns the registered term names, sorted.
func (r *Registry) ListTerms() []string {
	names := make([]string, 0, len(r.terms))
	for name := range r.terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
