package energy

import "errors"

var (
	// ErrIndexSubset flags an energy request with an unsupported number
	// of indices.
	ErrIndexSubset = errors.New("energy: unsupported index subset size")
	// ErrIndexRange flags a particle index outside the slice.
	ErrIndexRange = errors.New("energy: particle index out of range")
	// ErrCoincident flags two particles at the same position, where the
	// pair energy diverges.
	ErrCoincident = errors.New("energy: coincident particles")
)
