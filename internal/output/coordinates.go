// Package output writes particle coordinates in XYZ and PQR formats.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mlund/cppm-generator/internal/sphere"
)

// ErrUnknownFormat flags an output path whose suffix maps to no writer.
var ErrUnknownFormat = errors.New("output: file suffix must be .xyz or .pqr")

// atomRadius is the contact radius written to the PQR radius column (Å).
const atomRadius = 2.0

const commentLine = "generated by cppm-generator"

// AtomName maps a charge to its two-letter atom name: PP for positive,
// MP for negative, NP for neutral.
func AtomName(charge float64) string {
	switch {
	case charge > 0:
		return "PP"
	case charge < 0:
		return "MP"
	default:
		return "NP"
	}
}

// SaveCoordinates writes particles to path, picking the format from the
// file suffix.
func SaveCoordinates(path string, particles []sphere.Particle) error {
	var write func(io.Writer, []sphere.Particle) error
	switch {
	case strings.HasSuffix(path, ".xyz"):
		write = WriteXYZ
	case strings.HasSuffix(path, ".pqr"):
		write = WritePQR
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, particles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteXYZ writes the minimal XYZ format: a particle count, a comment
// line, then one "name x y z" line per particle.
func WriteXYZ(w io.Writer, particles []sphere.Particle) error {
	if _, err := fmt.Fprintf(w, "%d\n%s\n", len(particles), commentLine); err != nil {
		return err
	}
	for i := range particles {
		p := &particles[i]
		if _, err := fmt.Fprintf(w, "%s %v %v %v\n",
			AtomName(p.Charge), p.Pos.X, p.Pos.Y, p.Pos.Z); err != nil {
			return err
		}
	}
	return nil
}

// WritePQR writes fixed-width ATOM records carrying charge and contact
// radius columns, with the same two-line header as WriteXYZ. All
// particles share residue CPP 1 on chain A.
func WritePQR(w io.Writer, particles []sphere.Particle) error {
	if _, err := fmt.Fprintf(w, "%d\n%s\n", len(particles), commentLine); err != nil {
		return err
	}
	for i := range particles {
		p := &particles[i]
		_, err := fmt.Fprintf(w, "%-6s%5d %s%-1s%-3s %-1s%4d%-1s   %8.3f%8.3f%8.3f%6.2f%6.2f\n",
			"ATOM", i+1, centered(AtomName(p.Charge), 4), "A", "CPP", "A", 1, "0",
			p.Pos.X, p.Pos.Y, p.Pos.Z, p.Charge, atomRadius)
		if err != nil {
			return err
		}
	}
	return nil
}

// centered pads s to width with the surplus space on the right, the
// alignment PQR atom name columns use.
func centered(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
