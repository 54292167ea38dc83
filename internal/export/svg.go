// Package export renders archived runs as images: PNG trace charts and
// SVG snapshots of the final configuration.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mlund/cppm-generator/internal/sphere"
)

// ErrNoParticles flags a snapshot of an empty particle set.
var ErrNoParticles = errors.New("export: no particles")

// WriteSnapshotSVG draws an orthographic projection of the particles,
// viewed along +y. Charges are colored, the back hemisphere fades and
// shrinks with depth, and near particles are drawn last.
func WriteSnapshotSVG(w io.Writer, particles []sphere.Particle, size int) error {
	if len(particles) == 0 {
		return ErrNoParticles
	}
	if size <= 0 {
		size = 480
	}
	radius := particles[0].Radius
	if radius <= 0 {
		return errors.New("export: non-positive sphere radius")
	}

	center := float64(size) / 2
	scale := float64(size) * 0.45 / radius

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))
	sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"#333333\" stroke-width=\"1\"/>\n",
		center, center, radius*scale))

	order := make([]int, len(particles))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return particles[order[a]].Pos.Y < particles[order[b]].Pos.Y
	})

	for _, i := range order {
		p := &particles[i]
		x := center + p.Pos.X*scale
		y := center - p.Pos.Z*scale
		depth := (p.Pos.Y/radius + 1) / 2

		r := 2.0 + 2.5*depth
		opacity := 0.35 + 0.65*depth
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\" fill-opacity=\"%.2f\"/>\n",
			x, y, r, chargeColor(p.Charge), opacity))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func chargeColor(charge float64) string {
	switch {
	case charge > 0:
		return "#ff5555"
	case charge < 0:
		return "#5588ff"
	default:
		return "#888888"
	}
}
