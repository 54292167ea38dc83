// Package analysis computes observables of charged particle sets.
//
//   - [NetCharge], [AbsoluteCharge]: monopole moments
//   - [GeometricCenter], [ChargeCenter], [DipoleMoment]: first moments
//   - [Moments]: running averages sampled during a run
//   - [SystemProperties]: the summary block printed after a run
//   - [ZHistogram]: surface distribution check along z
//
// Dipole moments are reported in eÅ; use [ToDebye] to convert with the
// conversion factor 0.2081943 eÅ per Debye.
package analysis
