// Package energy defines pair potentials and Hamiltonian terms for
// charged particles on a sphere, all in units of kT.
//
//   - [PairPotential]: energy between two particles
//   - [Coulomb]: electrostatics plus a soft-core repulsion
//   - [Term]: index-subset energy contract used by Monte Carlo moves
//   - [Nonbonded]: pairwise-additive term over a pair potential
//   - [DipoleRestraint]: harmonic bias on the system dipole moment
//   - [Hamiltonian]: ordered sum of terms, itself a Term
//
// # Index subsets
//
// A Term evaluates three subset shapes. With no indices it returns the
// full system energy. With one index it returns that particle's energy
// against all others. With two indices it returns the pair energy plus
// both particles' energy against the rest, which is exactly the part of
// the system energy a charge swap can change. Other subset sizes yield
// [ErrIndexSubset].
package energy
