package viz

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlund/cppm-generator/internal/sphere"
)

func TestProjectorGrid(t *testing.T) {
	particles := []sphere.Particle{
		{Charge: 1, Radius: 10, Pos: r3.Vec{X: 0, Y: 5, Z: 0}},
		{Charge: -1, Radius: 10, Pos: r3.Vec{X: 8, Y: 0, Z: 3}},
		{Charge: 0, Radius: 10, Pos: r3.Vec{X: -4, Y: -6, Z: -7}},
	}
	p := Projector{Width: 21, Height: 11}
	out := p.Render(particles)

	lines := strings.Split(out, "\n")
	if len(lines) != p.Height {
		t.Fatalf("got %d rows, want %d", len(lines), p.Height)
	}
	for _, glyph := range []string{"+", "-", "·"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("projection misses %q", glyph)
		}
	}
}

func TestProjectorNearestWins(t *testing.T) {
	particles := []sphere.Particle{
		{Charge: -1, Radius: 10, Pos: r3.Vec{X: 0, Y: -5, Z: 0}},
		{Charge: 1, Radius: 10, Pos: r3.Vec{X: 0, Y: 5, Z: 0}},
	}
	p := Projector{Width: 21, Height: 11}
	lines := strings.Split(p.Render(particles), "\n")

	if got := []rune(lines[5])[10]; got != '+' {
		t.Fatalf("center cell = %q, want '+'", got)
	}
}

func TestProjectorYaw(t *testing.T) {
	// A particle on the +x axis sits at the right edge with no yaw and
	// faces the viewer, centered, after a quarter turn.
	particles := []sphere.Particle{{Charge: 1, Radius: 10, Pos: r3.Vec{X: 10, Y: 0, Z: 0}}}

	front := Projector{Width: 21, Height: 11}
	lines := strings.Split(front.Render(particles), "\n")
	if got := []rune(lines[5])[20]; got != '+' {
		t.Fatalf("edge cell = %q, want '+'", got)
	}

	turned := Projector{Width: 21, Height: 11, Yaw: math.Pi / 2}
	lines = strings.Split(turned.Render(particles), "\n")
	if got := []rune(lines[5])[10]; got != '+' {
		t.Fatalf("center cell after yaw = %q, want '+'", got)
	}
}
