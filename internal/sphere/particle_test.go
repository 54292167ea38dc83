package sphere

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCartesian(t *testing.T) {
	tests := []struct {
		name   string
		phi    float64
		theta  float64
		radius float64
		want   r3.Vec
	}{
		{"north pole", 0, 0, 20, r3.Vec{X: 0, Y: 0, Z: 20}},
		{"equator x", math.Pi / 2, 0, 20, r3.Vec{X: 20, Y: 0, Z: 0}},
		{"equator y", math.Pi / 2, math.Pi / 2, 20, r3.Vec{X: 0, Y: 20, Z: 0}},
		{"south pole", math.Pi, 0, 5, r3.Vec{X: 0, Y: 0, Z: -5}},
	}

	for _, tt := range tests {
		got := Cartesian(tt.phi, tt.theta, tt.radius)
		if math.Abs(got.X-tt.want.X) > 1e-12 ||
			math.Abs(got.Y-tt.want.Y) > 1e-12 ||
			math.Abs(got.Z-tt.want.Z) > 1e-12 {
			t.Errorf("%s: Cartesian(%g, %g, %g) = %v, want %v",
				tt.name, tt.phi, tt.theta, tt.radius, got, tt.want)
		}
	}
}

func TestSetAnglesUpdatesPosition(t *testing.T) {
	p := Particle{Radius: 10}
	p.SetAngles(1.2, 2.3)

	want := Cartesian(1.2, 2.3, 10)
	if p.Pos != want {
		t.Errorf("Pos = %v, want %v", p.Pos, want)
	}
	if p.Phi != 1.2 || p.Theta != 2.3 {
		t.Errorf("angles = (%g, %g), want (1.2, 2.3)", p.Phi, p.Theta)
	}
}

func TestRandomAnglesOnSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Particle{Radius: 20}

	for i := 0; i < 1000; i++ {
		p.RandomAngles(rng)
		if r := r3.Norm(p.Pos); math.Abs(r-20) > 1e-9 {
			t.Fatalf("draw %d: |pos| = %g, want 20", i, r)
		}
		if p.Phi < 0 || p.Phi > math.Pi {
			t.Fatalf("draw %d: phi = %g outside [0, π]", i, p.Phi)
		}
		if p.Theta < 0 || p.Theta >= 2*math.Pi {
			t.Fatalf("draw %d: theta = %g outside [0, 2π)", i, p.Theta)
		}
	}
}

func TestRandomAnglesUniform(t *testing.T) {
	// cos(phi) must be uniform on [-1, 1] for surface uniformity.
	rng := rand.New(rand.NewSource(7))
	p := Particle{Radius: 1}

	const draws = 50000
	const bins = 10
	counts := make([]int, bins)
	for i := 0; i < draws; i++ {
		p.RandomAngles(rng)
		bin := int((p.Pos.Z + 1) / 2 * bins)
		if bin == bins {
			bin--
		}
		counts[bin]++
	}

	want := float64(draws) / bins
	for i, c := range counts {
		if math.Abs(float64(c)-want) > 0.15*want {
			t.Errorf("bin %d: count %d deviates from %g by more than 15%%", i, c, want)
		}
	}
}

func TestDisplaceAngleBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := Particle{Radius: 20}
	p.RandomAngles(rng)

	const dp = 0.25
	for i := 0; i < 1000; i++ {
		phi, theta := p.Phi, p.Theta
		p.DisplaceAngle(dp, rng)
		if math.Abs(p.Phi-phi) > dp || math.Abs(p.Theta-theta) > dp {
			t.Fatalf("step %d: displacement (%g, %g) exceeds %g",
				i, p.Phi-phi, p.Theta-theta, dp)
		}
		if r := r3.Norm(p.Pos); math.Abs(r-20) > 1e-9 {
			t.Fatalf("step %d: |pos| = %g, want 20", i, r)
		}
	}
}

func TestDisplaceAngleZeroStep(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := Particle{Radius: 20}
	p.RandomAngles(rng)

	before := p
	p.DisplaceAngle(0, rng)
	if p.Pos != before.Pos || p.Phi != before.Phi || p.Theta != before.Theta {
		t.Errorf("zero step moved particle from %+v to %+v", before, p)
	}
}
