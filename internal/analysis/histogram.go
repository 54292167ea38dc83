package analysis

import "github.com/mlund/cppm-generator/internal/sphere"

// ZHistogram bins particles by z/R and returns the per-bin fraction. A
// uniform surface distribution gives a flat histogram since the surface
// element on a sphere is linear in z.
func ZHistogram(particles []sphere.Particle, bins int) []float64 {
	if bins < 1 || len(particles) == 0 {
		return nil
	}
	counts := make([]int, bins)
	for i := range particles {
		p := &particles[i]
		if p.Radius <= 0 {
			continue
		}
		bin := int((p.Pos.Z/p.Radius + 1) / 2 * float64(bins))
		if bin < 0 {
			bin = 0
		}
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}

	total := Sum(counts)
	fractions := make([]float64, bins)
	if total == 0 {
		return fractions
	}
	for i, c := range counts {
		fractions[i] = float64(c) / float64(total)
	}
	return fractions
}
