package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mlund/cppm-generator/internal/config"
)

func sweepBase() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Particles = 20
	cfg.Plus = 3
	cfg.Minus = 3
	cfg.Steps = 200
	cfg.SampleEvery = 10
	cfg.Seed = 5
	return cfg
}

func TestSpan(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{1, 5, 5, []float64{1, 2, 3, 4, 5}},
		{0, 1, 2, []float64{0, 1}},
		{3, 3, 1, []float64{3}},
		{1, 2, 0, nil},
	}

	for _, tt := range tests {
		got := Span(tt.lo, tt.hi, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Span(%g, %g, %d) = %v, want %v", tt.lo, tt.hi, tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("Span(%g, %g, %d)[%d] = %g, want %g",
					tt.lo, tt.hi, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSweepRun(t *testing.T) {
	s := New(sweepBase(), []float64{1, 7})

	var fired []int
	points, best, err := s.Run(context.Background(), func(i int, _ Point) {
		fired = append(fired, i)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Bjerrum != 1 || points[1].Bjerrum != 7 {
		t.Errorf("values = (%g, %g), want (1, 7)", points[0].Bjerrum, points[1].Bjerrum)
	}
	if best < 0 || best >= len(points) {
		t.Errorf("best index %d out of range", best)
	}
	for i, p := range points {
		if p.MeanDipole <= 0 {
			t.Errorf("point %d: mean dipole %g, want positive", i, p.MeanDipole)
		}
		if math.IsNaN(p.MeanEnergy) {
			t.Errorf("point %d: NaN mean energy", i)
		}
		if _, ok := p.Acceptance["displace"]; !ok {
			t.Errorf("point %d: missing displace acceptance", i)
		}
	}
	if len(fired) != 2 || fired[0] != 0 || fired[1] != 1 {
		t.Errorf("onPoint fired for %v", fired)
	}
}

func TestSweepLeavesBaseUntouched(t *testing.T) {
	base := sweepBase()
	s := New(base, []float64{2})
	if _, _, err := s.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if base.Bjerrum != config.DefaultBjerrum {
		t.Errorf("base Bjerrum mutated to %g", base.Bjerrum)
	}
}

func TestSweepErrors(t *testing.T) {
	if _, _, err := New(sweepBase(), nil).Run(context.Background(), nil); !errors.Is(err, ErrNoValues) {
		t.Errorf("err = %v, want ErrNoValues", err)
	}

	noTrace := sweepBase()
	noTrace.SampleEvery = 0
	if _, _, err := New(noTrace, []float64{1}).Run(context.Background(), nil); err == nil {
		t.Error("sweep without trace sampling succeeded")
	}

	bad := sweepBase()
	bad.Moves = []string{"teleport"}
	if _, _, err := New(bad, []float64{1}).Run(context.Background(), nil); err == nil {
		t.Error("sweep with unknown move succeeded")
	}
}
