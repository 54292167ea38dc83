package analysis

import "golang.org/x/exp/constraints"

// Number covers the numeric types the slice helpers accept.
type Number interface {
	constraints.Float | constraints.Integer
}

// Sum adds up a slice.
func Sum[T Number](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// Mean averages a slice as float64; an empty slice gives zero.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(Sum(values)) / float64(len(values))
}
