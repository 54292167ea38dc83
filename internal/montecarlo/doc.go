// Package montecarlo implements Metropolis Monte Carlo propagation.
//
//   - [Accept]: the Metropolis criterion
//   - [Move]: the proposal contract
//   - [DisplaceParticle], [SwapCharges]: the two proposal kinds
//   - [Tracked]: acceptance bookkeeping around a move
//   - [Propagator]: uniform random move selection per step
//
// Moves snapshot the state they touch before proposing and restore it
// exactly on rejection, so a rejected step leaves the particle slice
// bit-for-bit unchanged.
package montecarlo
