package config

import "sort"

func preset(mutate func(*Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// Presets are named parameter sets for common systems.
var Presets = map[string]*Config{
	"default": DefaultConfig(),

	// Few charges on a sparse surface; slow dipole convergence.
	"dilute": preset(func(c *Config) {
		c.Particles = 150
		c.Plus = 7
		c.Minus = 9
		c.Steps = 20000
	}),

	// Dense ionic shell with a small net charge.
	"charged": preset(func(c *Config) {
		c.Plus = 120
		c.Minus = 128
		c.Steps = 20000
		c.Displacement = 0.005
	}),

	// Hard-sphere packing reference without electrostatics.
	"neutral": preset(func(c *Config) {
		c.Plus = 0
		c.Minus = 0
		c.Moves = []string{"displace"}
	}),

	// Biased sampling toward a vanishing dipole moment.
	"restrained": preset(func(c *Config) {
		c.Terms = []string{"coulomb", "dipole-restraint"}
		c.DipoleSpring = 0.5
		c.DipoleTarget = 0
	}),

	// Small fast system for demos and the live view.
	"micro": preset(func(c *Config) {
		c.Particles = 64
		c.Plus = 6
		c.Minus = 8
		c.Steps = 2000
		c.SampleEvery = 5
	}),
}

// GetPreset returns a copy of the named preset, nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
