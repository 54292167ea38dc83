package montecarlo

import (
	"math"
	"math/rand"
)

// Accept applies the Metropolis criterion to an energy change in kT.
// The acceptance probability is min(1, exp(-delta)); exp underflows to
// zero for large positive delta and overflows to +Inf for large
// negative delta, so extreme values need no special casing.
func Accept(delta float64, rng *rand.Rand) bool {
	return rng.Float64() < math.Min(1.0, math.Exp(-delta))
}
