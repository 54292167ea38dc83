package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlund/cppm-generator/internal/sphere"
)

var (
	// ErrNoParticles flags an observable over an empty particle slice.
	ErrNoParticles = errors.New("analysis: no particles")
	// ErrNoCharge flags a charge-weighted observable on a system whose
	// absolute charge is zero.
	ErrNoCharge = errors.New("analysis: no charged particles")
)

// debyeEAngstrom is one Debye expressed in eÅ.
const debyeEAngstrom = 0.2081943

// ToDebye converts a dipole moment from eÅ to Debye.
func ToDebye(mu float64) float64 {
	return mu / debyeEAngstrom
}

// NetCharge is the monopole moment in units of e.
func NetCharge(particles []sphere.Particle) float64 {
	var q float64
	for i := range particles {
		q += particles[i].Charge
	}
	return q
}

// AbsoluteCharge is the summed magnitude of all charges in units of e.
func AbsoluteCharge(particles []sphere.Particle) float64 {
	var q float64
	for i := range particles {
		q += math.Abs(particles[i].Charge)
	}
	return q
}

// GeometricCenter averages the particle positions.
func GeometricCenter(particles []sphere.Particle) (r3.Vec, error) {
	if len(particles) == 0 {
		return r3.Vec{}, ErrNoParticles
	}
	var c r3.Vec
	for i := range particles {
		c = r3.Add(c, particles[i].Pos)
	}
	return r3.Scale(1/float64(len(particles)), c), nil
}

// ChargeCenter averages the particle positions weighted by absolute
// charge. Systems without charges have no charge center.
func ChargeCenter(particles []sphere.Particle) (r3.Vec, error) {
	if len(particles) == 0 {
		return r3.Vec{}, ErrNoParticles
	}
	var c r3.Vec
	var weight float64
	for i := range particles {
		q := math.Abs(particles[i].Charge)
		c = r3.Add(c, r3.Scale(q, particles[i].Pos))
		weight += q
	}
	if weight == 0 {
		return r3.Vec{}, ErrNoCharge
	}
	return r3.Scale(1/weight, c), nil
}

// DipoleMoment is Σqᵢ𝐫ᵢ in eÅ with the origin at the sphere center.
func DipoleMoment(particles []sphere.Particle) r3.Vec {
	var mu r3.Vec
	for i := range particles {
		mu = r3.Add(mu, r3.Scale(particles[i].Charge, particles[i].Pos))
	}
	return mu
}

// Properties summarizes a particle set.
type Properties struct {
	Particles        int
	Radius           float64 // Å
	SurfaceArea      float64 // Å²
	NetCharge        float64 // e
	AbsoluteCharge   float64 // e
	Dipole           float64 // |μ| (eÅ)
	AreaPerParticle  float64 // Å²
	AreaPerCharge    float64 // Å²/e, signed; ±Inf for neutral systems
	AreaPerAbsCharge float64 // Å²/e; +Inf for neutral systems
}

// SystemProperties computes the final summary of a particle set. The
// radius is taken from the first particle.
func SystemProperties(particles []sphere.Particle) (Properties, error) {
	if len(particles) == 0 {
		return Properties{}, ErrNoParticles
	}
	radius := particles[0].Radius
	area := 4 * math.Pi * radius * radius
	net := NetCharge(particles)
	abs := AbsoluteCharge(particles)

	return Properties{
		Particles:        len(particles),
		Radius:           radius,
		SurfaceArea:      area,
		NetCharge:        net,
		AbsoluteCharge:   abs,
		Dipole:           r3.Norm(DipoleMoment(particles)),
		AreaPerParticle:  area / float64(len(particles)),
		AreaPerCharge:    area / net,
		AreaPerAbsCharge: area / abs,
	}, nil
}

// Report renders the summary block printed at the end of a run.
func (p Properties) Report() string {
	var b strings.Builder
	b.WriteString("CPPM properties:\n")
	fmt.Fprintf(&b, "  number of particles       = %d\n", p.Particles)
	fmt.Fprintf(&b, "  abs. net charge           = %v\n", p.AbsoluteCharge)
	fmt.Fprintf(&b, "  radius                    = %v Å\n", p.Radius)
	fmt.Fprintf(&b, "  surface area              = %.2f Å²\n", p.SurfaceArea)
	fmt.Fprintf(&b, "  monopole moment           = %.2fe\n", p.NetCharge)
	fmt.Fprintf(&b, "  dipole moment |𝛍|         = %.2f eÅ = %.2f D\n", p.Dipole, ToDebye(p.Dipole))
	fmt.Fprintf(&b, "  particle density          = %.2f Å²/particle\n", p.AreaPerParticle)
	fmt.Fprintf(&b, "  surf. charge density      = %.2f Å²/e\n", p.AreaPerCharge)
	fmt.Fprintf(&b, "  abs. surf. charge density = %.2f Å²/e\n", p.AreaPerAbsCharge)
	return b.String()
}
