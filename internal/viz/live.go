package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlund/cppm-generator/internal/analysis"
	"github.com/mlund/cppm-generator/internal/experiment"
	"github.com/mlund/cppm-generator/internal/montecarlo"
)

const (
	historyCapacity   = 600
	maxStepsPerFrame  = 5000
	defaultStepsFrame = 200
)

type TickMsg time.Time

// Model drives the interactive view of a running experiment.
type Model struct {
	exp           *experiment.Experiment
	projector     Projector
	stepsPerFrame int
	paused        bool
	steps         int
	energy        float64
	energyHistory []float64
	err           error
}

// NewModel wraps an assembled experiment for interactive driving.
func NewModel(exp *experiment.Experiment) Model {
	return Model{
		exp:           exp,
		projector:     Projector{Width: 56, Height: 26},
		stepsPerFrame: defaultStepsFrame,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation between
// frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.exp.Reshuffle()
			m.energyHistory = m.energyHistory[:0]
		case "left":
			m.projector.Yaw -= 0.15
		case "right":
			m.projector.Yaw += 0.15
		case "+", "=":
			m.stepsPerFrame *= 2
			if m.stepsPerFrame > maxStepsPerFrame {
				m.stepsPerFrame = maxStepsPerFrame
			}
		case "-", "_":
			m.stepsPerFrame /= 2
			if m.stepsPerFrame < 1 {
				m.stepsPerFrame = 1
			}
		case "d":
			m.scaleDisplacement(0.8)
		case "D":
			m.scaleDisplacement(1.25)
		}
	case TickMsg:
		if !m.paused && m.err == nil {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	if err := m.exp.Advance(m.stepsPerFrame); err != nil {
		m.err = err
		return
	}
	m.steps += m.stepsPerFrame

	u, err := m.exp.Energy()
	if err != nil {
		m.err = err
		return
	}
	m.energy = u
	m.energyHistory = append(m.energyHistory, u)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) scaleDisplacement(factor float64) {
	m.exp.TuneMoves(func(mv montecarlo.Move) {
		if d, ok := mv.(*montecarlo.DisplaceParticle); ok {
			d.Step *= factor
		}
	})
}

func (m Model) displacement() float64 {
	var step float64
	m.exp.TuneMoves(func(mv montecarlo.Move) {
		if d, ok := mv.(*montecarlo.DisplaceParticle); ok {
			step = d.Step
		}
	})
	return step
}

// View renders the sphere projection next to the stats panel.
func (m Model) View() string {
	sphereView := sphereStyle.Render(m.projector.Render(m.exp.Particles()))

	cfg := m.exp.Config()
	mu := r3.Norm(analysis.DipoleMoment(m.exp.Particles()))

	var s strings.Builder
	s.WriteString(headerStyle.Render("CPPM MONTE CARLO") + "\n")
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	if m.err != nil {
		status = "ERROR: " + m.err.Error()
	}
	s.WriteString(status + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(6), asciigraph.Width(34), asciigraph.Caption("energy (kT)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f kT", m.energy)) + "\n")
	s.WriteString(labelStyle.Render("Dipole") + valueStyle.Render(fmt.Sprintf("%.1f eÅ (%.0f D)", mu, analysis.ToDebye(mu))) + "\n")
	for _, st := range m.exp.Stats() {
		s.WriteString(labelStyle.Render(st.Name) + valueStyle.Render(fmt.Sprintf("%.2f of %d", st.Acceptance, st.Attempted)) + "\n")
	}
	s.WriteString(labelStyle.Render("Step width") + valueStyle.Render(fmt.Sprintf("%.4f rad", m.displacement())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d (+%d/-%d)", cfg.Particles, cfg.Plus, cfg.Minus)) + "\n")
	s.WriteString(labelStyle.Render("Bjerrum") + valueStyle.Render(fmt.Sprintf("%.2f Å", cfg.Bjerrum)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d steps/frame", m.stepsPerFrame)))

	s.WriteString(helpStyle.Render("\nSP:Pause R:Shuffle ←→:Rotate\n+/-:Speed d/D:Step Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sphereView, statsView)
}

// Run opens the interactive viewer and blocks until the user quits.
func Run(exp *experiment.Experiment) error {
	_, err := tea.NewProgram(NewModel(exp), tea.WithAltScreen()).Run()
	return err
}
