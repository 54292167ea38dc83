// Package config defines simulation parameters and their YAML form.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default simulation parameters.
const (
	DefaultRadius       = 20.0
	DefaultParticles    = 643
	DefaultPlus         = 29
	DefaultMinus        = 37
	DefaultSteps        = 10000
	DefaultBjerrum      = 7.0
	DefaultDisplacement = 0.01
	DefaultSampleEvery  = 10
	DefaultSeed         = 1
	DefaultOutput       = "cppm.pqr"
	DefaultStorageDir   = "runs"
)

// Config holds every parameter of a Monte Carlo run.
type Config struct {
	Radius        float64  `yaml:"radius" json:"radius"`                 // sphere radius (Å)
	Particles     int      `yaml:"particles" json:"particles"`           // total particle count
	Plus          int      `yaml:"plus" json:"plus"`                     // +1e particles
	Minus         int      `yaml:"minus" json:"minus"`                   // -1e particles
	Steps         int      `yaml:"steps" json:"steps"`                   // Monte Carlo steps
	Bjerrum       float64  `yaml:"bjerrum" json:"bjerrum"`               // Bjerrum length (Å)
	Displacement  float64  `yaml:"displacement" json:"displacement"`     // angular move step
	Moves         []string `yaml:"moves" json:"moves"`                   // registered move names
	Terms         []string `yaml:"terms" json:"terms"`                   // registered energy term names
	DipoleSpring  float64  `yaml:"dipole_spring" json:"dipole_spring"`   // restraint constant (kT/(eÅ)²)
	DipoleTarget  float64  `yaml:"dipole_target" json:"dipole_target"`   // restraint target (eÅ)
	Seed          int64    `yaml:"seed" json:"seed"`                     // RNG seed; 0 picks a time-derived one
	SampleEvery   int      `yaml:"sample_every" json:"sample_every"`     // trace sampling stride; 0 disables
	Equilibration int      `yaml:"equilibration" json:"equilibration"`   // steps before moment sampling
	Output        string   `yaml:"output" json:"output"`                 // coordinate file (.xyz or .pqr)
	StorageDir    string   `yaml:"storage_dir" json:"storage_dir"`       // run archive directory
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() *Config {
	return &Config{
		Radius:       DefaultRadius,
		Particles:    DefaultParticles,
		Plus:         DefaultPlus,
		Minus:        DefaultMinus,
		Steps:        DefaultSteps,
		Bjerrum:      DefaultBjerrum,
		Displacement: DefaultDisplacement,
		Moves:        []string{"displace", "swap"},
		Terms:        []string{"coulomb"},
		Seed:         DefaultSeed,
		SampleEvery:  DefaultSampleEvery,
		Output:       DefaultOutput,
		StorageDir:   DefaultStorageDir,
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Moves = append([]string(nil), c.Moves...)
	clone.Terms = append([]string(nil), c.Terms...)
	return &clone
}

// Load reads a YAML config from path, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the physical parameters. Move and term names are
// resolved later by the experiment registry.
func (c *Config) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("config: radius must be positive, got %g", c.Radius)
	}
	if c.Particles < 1 {
		return fmt.Errorf("config: need at least one particle, got %d", c.Particles)
	}
	if c.Plus < 0 || c.Minus < 0 {
		return fmt.Errorf("config: negative charge counts (%d plus, %d minus)", c.Plus, c.Minus)
	}
	if c.Plus+c.Minus > c.Particles {
		return fmt.Errorf("config: %d charged particles exceed %d total", c.Plus+c.Minus, c.Particles)
	}
	if c.Steps < 0 {
		return fmt.Errorf("config: negative step count %d", c.Steps)
	}
	if c.Displacement <= 0 {
		return fmt.Errorf("config: displacement must be positive, got %g", c.Displacement)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("config: negative sampling stride %d", c.SampleEvery)
	}
	if c.Equilibration < 0 {
		return fmt.Errorf("config: negative equilibration %d", c.Equilibration)
	}
	if c.DipoleSpring < 0 {
		return fmt.Errorf("config: negative dipole spring %g", c.DipoleSpring)
	}
	if len(c.Moves) == 0 {
		return errors.New("config: no moves configured")
	}
	if len(c.Terms) == 0 {
		return errors.New("config: no energy terms configured")
	}
	return nil
}
