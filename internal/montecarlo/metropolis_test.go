package montecarlo

import (
	"math"
	"math/rand"
	"testing"
)

func TestAccept(t *testing.T) {
	maxExponent := math.Log(math.MaxFloat64)
	tests := []struct {
		name  string
		delta float64
		want  bool
	}{
		{"downhill", -1.0, true},
		{"zero", 0.0, true},
		{"very downhill", -2 * maxExponent, true},
		{"at exp underflow", maxExponent, false},
		{"beyond exp underflow", 1.1 * maxExponent, false},
		{"infinite uphill", math.Inf(1), false},
	}

	rng := rand.New(rand.NewSource(1))
	for _, tt := range tests {
		for i := 0; i < 1000; i++ {
			if got := Accept(tt.delta, rng); got != tt.want {
				t.Fatalf("%s: Accept(%g) = %v, want %v", tt.name, tt.delta, got, tt.want)
			}
		}
	}
}

func TestAcceptModerateUphill(t *testing.T) {
	// exp(-1) ≈ 0.368: a moderate uphill move is sometimes accepted,
	// sometimes rejected.
	rng := rand.New(rand.NewSource(2))
	accepted := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		if Accept(1.0, rng) {
			accepted++
		}
	}
	ratio := float64(accepted) / trials
	if math.Abs(ratio-math.Exp(-1)) > 0.02 {
		t.Errorf("acceptance ratio = %g, want ≈ %g", ratio, math.Exp(-1))
	}
}
