package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlund/cppm-generator/internal/storage"
)

const testPlan = `name: convergence
description: two quick systems
runs:
  - name: weak
    preset: micro
    steps: 100
    bjerrum: 1.0
    seed: 3
  - name: strong
    preset: micro
    steps: 100
    bjerrum: 12.0
    seed: 3
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPlan(t *testing.T) {
	plan, err := LoadPlan(writePlan(t, testPlan))
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if plan.Name != "convergence" {
		t.Errorf("Name = %q", plan.Name)
	}
	if len(plan.Runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(plan.Runs))
	}
	if plan.Runs[0].Steps == nil || *plan.Runs[0].Steps != 100 {
		t.Errorf("steps override = %v", plan.Runs[0].Steps)
	}
	if plan.Runs[1].Bjerrum == nil || *plan.Runs[1].Bjerrum != 12.0 {
		t.Errorf("bjerrum override = %v", plan.Runs[1].Bjerrum)
	}
	if plan.Runs[0].Radius != nil {
		t.Errorf("unset radius = %v, want nil", plan.Runs[0].Radius)
	}
}

func TestLoadPlanMissing(t *testing.T) {
	if _, err := LoadPlan(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadPlan of missing file succeeded")
	}
}

func TestResolve(t *testing.T) {
	steps := 50
	spec := RunSpec{Preset: "micro", Steps: &steps}

	cfg, err := spec.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Steps != 50 {
		t.Errorf("Steps = %d, want 50", cfg.Steps)
	}
	if cfg.Particles != 64 {
		t.Errorf("Particles = %d, want preset value 64", cfg.Particles)
	}
	if cfg.Output != "" {
		t.Errorf("Output = %q, want empty for plan runs", cfg.Output)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	spec := RunSpec{Preset: "colossal"}
	if _, err := spec.Resolve(); err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("err = %v, want unknown preset", err)
	}
}

func TestResolveInvalidOverride(t *testing.T) {
	plus := 1000
	spec := RunSpec{Preset: "micro", Plus: &plus}
	if _, err := spec.Resolve(); err == nil {
		t.Error("invalid override accepted")
	}
}

func TestRunPlan(t *testing.T) {
	plan, err := LoadPlan(writePlan(t, testPlan))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	var started []string
	summaries, err := RunPlan(context.Background(), plan, st, func(i, total int, name string) {
		started = append(started, name)
	})
	if err != nil {
		t.Fatalf("RunPlan failed: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].Name != "weak" || summaries[1].Name != "strong" {
		t.Errorf("names = %s, %s", summaries[0].Name, summaries[1].Name)
	}
	for _, s := range summaries {
		if s.RunID == "" {
			t.Errorf("run %s: empty run ID", s.Name)
		}
		if s.MeanDipole <= 0 {
			t.Errorf("run %s: mean dipole %g", s.Name, s.MeanDipole)
		}
	}
	if len(started) != 2 {
		t.Errorf("onRun fired %d times", len(started))
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("store holds %d runs, want 2", len(runs))
	}
}

func TestRunPlanEmpty(t *testing.T) {
	st := storage.New(t.TempDir())
	if _, err := RunPlan(context.Background(), &Plan{}, st, nil); err == nil {
		t.Error("empty plan succeeded")
	}
}

func TestRunPlanValidatesUpFront(t *testing.T) {
	bad := -5.0
	plan := &Plan{Runs: []RunSpec{
		{Name: "ok", Preset: "micro"},
		{Name: "broken", Preset: "micro", Radius: &bad},
	}}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	ran := 0
	_, err := RunPlan(context.Background(), plan, st, func(int, int, string) { ran++ })
	if err == nil {
		t.Fatal("plan with invalid run succeeded")
	}
	if ran != 0 {
		t.Errorf("%d runs started before validation failed", ran)
	}
}
