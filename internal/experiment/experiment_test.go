package experiment

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mlund/cppm-generator/internal/config"
)

// microConfig is a small charged system that runs in milliseconds.
func microConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Particles = 24
	cfg.Plus = 3
	cfg.Minus = 5
	cfg.Steps = 300
	cfg.SampleEvery = 10
	cfg.Seed = 42
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := microConfig()
	cfg.Radius = -1

	if _, err := New(cfg, NewRegistry()); err == nil {
		t.Error("invalid config accepted")
	}
}

func TestNewUnknownNames(t *testing.T) {
	cfg := microConfig()
	cfg.Moves = []string{"teleport"}
	_, err := New(cfg, NewRegistry())
	if err == nil || !strings.Contains(err.Error(), "unknown move") {
		t.Errorf("err = %v, want unknown move", err)
	}

	cfg = microConfig()
	cfg.Terms = []string{"gravity"}
	_, err = New(cfg, NewRegistry())
	if err == nil || !strings.Contains(err.Error(), "unknown term") {
		t.Errorf("err = %v, want unknown term", err)
	}
}

func TestNewResolvesZeroSeed(t *testing.T) {
	cfg := microConfig()
	cfg.Seed = 0

	if _, err := New(cfg, NewRegistry()); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Seed == 0 {
		t.Error("zero seed not replaced")
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func() *Result {
		exp, err := New(microConfig(), NewRegistry())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		result, err := exp.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return result
	}

	a, b := run(), run()
	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("sample counts differ: %d vs %d", len(a.Samples), len(b.Samples))
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, a.Samples[i], b.Samples[i])
		}
	}
	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatalf("particle %d differs between equal seeds", i)
		}
	}
}

func TestRunSamplingCadence(t *testing.T) {
	cfg := microConfig()
	cfg.Steps = 100
	cfg.SampleEvery = 10
	cfg.Equilibration = 40

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := exp.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Samples) != 10 {
		t.Errorf("got %d trace samples, want 10", len(result.Samples))
	}
	for i, s := range result.Samples {
		if s.Step != i*10 {
			t.Errorf("sample %d at step %d, want %d", i, s.Step, i*10)
		}
		if math.IsNaN(s.Energy) || math.IsNaN(s.Dipole) {
			t.Errorf("sample %d contains NaN: %+v", i, s)
		}
	}
	if got := result.Moments.Samples(); got != 60 {
		t.Errorf("moment samples = %d, want 60 (steps after equilibration)", got)
	}
}

func TestRunSamplingDisabled(t *testing.T) {
	cfg := microConfig()
	cfg.SampleEvery = 0

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := exp.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Samples) != 0 {
		t.Errorf("got %d samples with sampling disabled", len(result.Samples))
	}
}

func TestRunNeutralSystem(t *testing.T) {
	cfg := microConfig()
	cfg.Plus = 0
	cfg.Minus = 0
	cfg.Moves = []string{"displace"}

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := exp.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Moments.Samples() != 0 {
		t.Errorf("neutral system accumulated %d moment samples", result.Moments.Samples())
	}
	for _, s := range result.Samples {
		if s.Dipole != 0 {
			t.Errorf("neutral system dipole = %g at step %d", s.Dipole, s.Step)
		}
	}
}

func TestRunContextCancel(t *testing.T) {
	cfg := microConfig()
	cfg.Steps = 1000000

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := exp.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunReportsAcceptance(t *testing.T) {
	exp, err := New(microConfig(), NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := exp.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Acceptance) != 2 {
		t.Fatalf("got %d move stats, want 2", len(result.Acceptance))
	}
	total := 0
	for _, st := range result.Acceptance {
		if st.Acceptance < 0 || st.Acceptance > 1 {
			t.Errorf("move %s: acceptance %g outside [0, 1]", st.Name, st.Acceptance)
		}
		total += st.Attempted
	}
	if total != 300 {
		t.Errorf("attempts sum to %d, want 300", total)
	}
}

func TestOnStepCallback(t *testing.T) {
	cfg := microConfig()
	cfg.Steps = 50

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var seen []int
	if _, err := exp.Run(context.Background(), func(step int) {
		seen = append(seen, step)
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(seen) != 50 || seen[0] != 1 || seen[49] != 50 {
		t.Errorf("callback steps = %v", seen)
	}
}

func TestAdvanceAndEnergy(t *testing.T) {
	exp, err := New(microConfig(), NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	before, err := exp.Energy()
	if err != nil {
		t.Fatalf("Energy failed: %v", err)
	}
	if math.IsNaN(before) {
		t.Fatal("initial energy is NaN")
	}
	if err := exp.Advance(100); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	stats := exp.Stats()
	attempts := 0
	for _, st := range stats {
		attempts += st.Attempted
	}
	if attempts != 100 {
		t.Errorf("attempts = %d after Advance(100)", attempts)
	}
}

func TestRegistryLists(t *testing.T) {
	r := NewRegistry()

	moves := r.ListMoves()
	if len(moves) != 2 || moves[0] != "displace" || moves[1] != "swap" {
		t.Errorf("ListMoves = %v", moves)
	}
	terms := r.ListTerms()
	if len(terms) != 2 || terms[0] != "coulomb" || terms[1] != "dipole-restraint" {
		t.Errorf("ListTerms = %v", terms)
	}
}
