package sphere

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Particle is a point charge on a sphere surface. Pos is derived from
// the angles and radius; mutate the angles through SetAngles (or the
// helpers below) so the two stay consistent.
type Particle struct {
	Charge float64 // charge (e)
	Phi    float64 // polar angle from the +z axis
	Theta  float64 // azimuthal angle in the xy plane
	Radius float64 // distance from the sphere center (Å)
	Pos    r3.Vec  // cartesian position (Å)
}

// Cartesian maps spherical coordinates to a cartesian vector.
func Cartesian(phi, theta, radius float64) r3.Vec {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return r3.Vec{
		X: radius * sinPhi * cosTheta,
		Y: radius * sinPhi * sinTheta,
		Z: radius * cosPhi,
	}
}

// SetAngles stores the angles and refreshes the cartesian position.
func (p *Particle) SetAngles(phi, theta float64) {
	p.Phi = phi
	p.Theta = theta
	p.Pos = Cartesian(phi, theta, p.Radius)
}

// RandomAngles places the particle uniformly on the sphere surface.
// Uniformity needs cos(phi), not phi, to be uniform.
func (p *Particle) RandomAngles(rng *rand.Rand) {
	phi := math.Acos(2.0*rng.Float64() - 1.0)
	theta := 2.0 * math.Pi * rng.Float64()
	p.SetAngles(phi, theta)
}

// DisplaceAngle perturbs both angles by a point drawn uniformly from a
// disc of radius dp. The proposal is symmetric and the angles are left
// unnormalized.
func (p *Particle) DisplaceAngle(dp float64, rng *rand.Rand) {
	angle := 2.0 * math.Pi * rng.Float64()
	length := dp * rng.Float64()
	p.SetAngles(p.Phi+math.Sin(angle)*length, p.Theta+math.Cos(angle)*length)
}
