package viz

import (
	"math"
	"strings"

	"github.com/mlund/cppm-generator/internal/sphere"
)

// Projector draws particles onto a rune grid using an orthographic
// projection. The view axis is the y axis rotated by Yaw around z;
// columns map to x, rows to z.
type Projector struct {
	Width  int
	Height int
	Yaw    float64
}

type gridCell struct {
	depth  float64
	charge float64
	filled bool
}

// Render projects the particles onto the grid. When two particles land
// in the same cell the nearer one wins.
func (p *Projector) Render(particles []sphere.Particle) string {
	cells := make([]gridCell, p.Width*p.Height)
	sinYaw, cosYaw := math.Sincos(p.Yaw)

	for i := range particles {
		pt := &particles[i]
		if pt.Radius <= 0 {
			continue
		}
		x := pt.Pos.X*cosYaw - pt.Pos.Y*sinYaw
		depth := pt.Pos.X*sinYaw + pt.Pos.Y*cosYaw

		col := int((x/pt.Radius + 1) / 2 * float64(p.Width-1))
		row := int((1 - pt.Pos.Z/pt.Radius) / 2 * float64(p.Height-1))
		if col < 0 || col >= p.Width || row < 0 || row >= p.Height {
			continue
		}

		cell := &cells[row*p.Width+col]
		if cell.filled && cell.depth >= depth {
			continue
		}
		cell.filled = true
		cell.depth = depth
		cell.charge = pt.Charge
	}

	var b strings.Builder
	for row := 0; row < p.Height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < p.Width; col++ {
			cell := cells[row*p.Width+col]
			if !cell.filled {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(glyph(cell.charge, cell.depth >= 0))
		}
	}
	return b.String()
}

func glyph(charge float64, front bool) string {
	switch {
	case charge > 0:
		if front {
			return plusFront.Render("+")
		}
		return plusBack.Render("+")
	case charge < 0:
		if front {
			return minusFront.Render("-")
		}
		return minusBack.Render("-")
	default:
		if front {
			return neutralFront.Render("·")
		}
		return neutralBack.Render("·")
	}
}
