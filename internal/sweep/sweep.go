// Package sweep evaluates a run configuration over a range of Bjerrum
// lengths.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mlund/cppm-generator/internal/config"
	"github.com/mlund/cppm-generator/internal/experiment"
)

// ErrNoValues flags a sweep without parameter values.
var ErrNoValues = errors.New("sweep: no parameter values")

// Point is the outcome of one sweep evaluation.
type Point struct {
	Bjerrum    float64            // λB (Å)
	MeanDipole float64            // ⟨|μ|⟩ (eÅ)
	MeanEnergy float64            // tail-averaged trace energy (kT)
	Acceptance map[string]float64 // per move
}

// Sweep runs one experiment per Bjerrum length, all other parameters
// fixed by the base config.
type Sweep struct {
	Base   *config.Config
	Values []float64
}

// New returns a sweep of base over values.
func New(base *config.Config, values []float64) *Sweep {
	return &Sweep{Base: base, Values: values}
}

// Run evaluates every value in order. onPoint, when non-nil, fires
// after each completed evaluation. The second return is the index of
// the minimum mean energy.
func (s *Sweep) Run(ctx context.Context, onPoint func(i int, p Point)) ([]Point, int, error) {
	if len(s.Values) == 0 {
		return nil, 0, ErrNoValues
	}
	if s.Base.SampleEvery <= 0 {
		return nil, 0, errors.New("sweep: base config must sample the trace")
	}

	registry := experiment.NewRegistry()
	points := make([]Point, 0, len(s.Values))
	best := 0

	for i, bjerrum := range s.Values {
		cfg := s.Base.Clone()
		cfg.Bjerrum = bjerrum

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return nil, 0, fmt.Errorf("λB = %g: %w", bjerrum, err)
		}
		result, err := exp.Run(ctx, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("λB = %g: %w", bjerrum, err)
		}

		acceptance := make(map[string]float64, len(result.Acceptance))
		for _, st := range result.Acceptance {
			acceptance[st.Name] = st.Acceptance
		}
		point := Point{
			Bjerrum:    bjerrum,
			MeanDipole: result.Moments.MeanDipole(),
			MeanEnergy: tailMean(result.Samples),
			Acceptance: acceptance,
		}
		points = append(points, point)
		if point.MeanEnergy < points[best].MeanEnergy {
			best = i
		}
		if onPoint != nil {
			onPoint(i, point)
		}
	}
	return points, best, nil
}

// tailMean averages the energies of the second half of the trace,
// discarding the relaxation transient.
func tailMean(samples []experiment.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	tail := samples[len(samples)/2:]
	energies := make([]float64, len(tail))
	for i, s := range tail {
		energies[i] = s.Energy
	}
	return stat.Mean(energies, nil)
}

// Span builds n evenly spaced values from lo to hi inclusive.
func Span(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	dst := make([]float64, n)
	floats.Span(dst, lo, hi)
	return dst
}
