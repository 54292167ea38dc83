package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mlund/cppm-generator/internal/experiment"
)

// WriteTraceChart renders the sampled energy and dipole traces of a run
// as a PNG, energy on the primary axis and dipole on the secondary.
func WriteTraceChart(w io.Writer, samples []experiment.Sample, title string) error {
	if len(samples) < 2 {
		return fmt.Errorf("export: need at least two samples, got %d", len(samples))
	}

	steps := make([]float64, len(samples))
	energies := make([]float64, len(samples))
	dipoles := make([]float64, len(samples))
	for i, s := range samples {
		steps[i] = float64(s.Step)
		energies[i] = s.Energy
		dipoles[i] = s.Dipole
	}

	graph := chart.Chart{
		Title: title,
		XAxis: chart.XAxis{Name: "MC step"},
		YAxis: chart.YAxis{Name: "energy (kT)"},
		YAxisSecondary: chart.YAxis{
			Name: "dipole (eÅ)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "energy",
				XValues: steps,
				YValues: energies,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
				},
			},
			chart.ContinuousSeries{
				Name:    "dipole",
				YAxis:   chart.YAxisSecondary,
				XValues: steps,
				YValues: dipoles,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 255, G: 140, B: 0, A: 255},
					StrokeWidth: 1.5,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
