// Package sphere models point particles confined to a sphere surface.
//
// Positions are stored as spherical angles plus a cached cartesian
// vector that is refreshed whenever the angles change:
//
//   - [Particle]: charge, angles, radius and cartesian position
//   - [Generate]: random sets of charged and neutral particles
//   - [Cartesian]: spherical to cartesian mapping
//
// The polar angle is drawn as acos(2u-1) so that points land uniformly
// on the surface. Angular displacements never wrap; the trigonometric
// mapping accepts any angle, so out-of-range values are harmless.
package sphere
