// Package batch runs a scripted sequence of simulations from a YAML
// plan, archiving each run in the store.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mlund/cppm-generator/internal/config"
	"github.com/mlund/cppm-generator/internal/experiment"
	"github.com/mlund/cppm-generator/internal/output"
	"github.com/mlund/cppm-generator/internal/storage"
)

// RunSpec selects a preset and optional overrides for one planned run.
// Pointer fields stay at the preset value when unset.
type RunSpec struct {
	Name      string   `yaml:"name"`
	Preset    string   `yaml:"preset"`
	Radius    *float64 `yaml:"radius"`
	Particles *int     `yaml:"particles"`
	Plus      *int     `yaml:"plus"`
	Minus     *int     `yaml:"minus"`
	Steps     *int     `yaml:"steps"`
	Bjerrum   *float64 `yaml:"bjerrum"`
	Seed      *int64   `yaml:"seed"`
	Output    string   `yaml:"output"`
}

// Plan is a named sequence of runs.
type Plan struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Runs        []RunSpec `yaml:"runs"`
}

// LoadPlan reads a plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Resolve materializes the config for one spec. Coordinate files are
// only written when the spec names one, so runs in a plan don't
// clobber each other's output.
func (r *RunSpec) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if r.Preset != "" {
		cfg = config.GetPreset(r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("batch: unknown preset: %s", r.Preset)
		}
	}
	cfg.Output = r.Output

	if r.Radius != nil {
		cfg.Radius = *r.Radius
	}
	if r.Particles != nil {
		cfg.Particles = *r.Particles
	}
	if r.Plus != nil {
		cfg.Plus = *r.Plus
	}
	if r.Minus != nil {
		cfg.Minus = *r.Minus
	}
	if r.Steps != nil {
		cfg.Steps = *r.Steps
	}
	if r.Bjerrum != nil {
		cfg.Bjerrum = *r.Bjerrum
	}
	if r.Seed != nil {
		cfg.Seed = *r.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunSummary reports one executed run of a plan.
type RunSummary struct {
	Name       string
	RunID      string
	MeanDipole float64 // ⟨|μ|⟩ (eÅ)
	Energy     float64 // last sampled energy (kT)
	Elapsed    time.Duration
}

// RunPlan resolves every spec up front, then executes them in order.
// onRun, when non-nil, fires before each run starts.
func RunPlan(ctx context.Context, plan *Plan, store *storage.Store, onRun func(i, total int, name string)) ([]RunSummary, error) {
	if len(plan.Runs) == 0 {
		return nil, errors.New("batch: plan has no runs")
	}

	cfgs := make([]*config.Config, len(plan.Runs))
	for i := range plan.Runs {
		cfg, err := plan.Runs[i].Resolve()
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", specName(&plan.Runs[i], i), err)
		}
		cfgs[i] = cfg
	}

	registry := experiment.NewRegistry()
	summaries := make([]RunSummary, 0, len(cfgs))

	for i, cfg := range cfgs {
		name := specName(&plan.Runs[i], i)
		if onRun != nil {
			onRun(i, len(cfgs), name)
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return summaries, fmt.Errorf("run %q: %w", name, err)
		}
		result, err := exp.Run(ctx, nil)
		if err != nil {
			return summaries, fmt.Errorf("run %q: %w", name, err)
		}

		runID, err := store.Save(result)
		if err != nil {
			return summaries, fmt.Errorf("run %q: %w", name, err)
		}
		if cfg.Output != "" {
			if err := output.SaveCoordinates(cfg.Output, result.Particles); err != nil {
				return summaries, fmt.Errorf("run %q: %w", name, err)
			}
		}

		summary := RunSummary{
			Name:       name,
			RunID:      runID,
			MeanDipole: result.Moments.MeanDipole(),
			Elapsed:    result.Elapsed,
		}
		if len(result.Samples) > 0 {
			summary.Energy = result.Samples[len(result.Samples)-1].Energy
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func specName(spec *RunSpec, i int) string {
	if spec.Name != "" {
		return spec.Name
	}
	if spec.Preset != "" {
		return fmt.Sprintf("%s-%d", spec.Preset, i+1)
	}
	return fmt.Sprintf("run-%d", i+1)
}
