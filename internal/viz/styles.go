package viz

import "github.com/charmbracelet/lipgloss"

var (
	sphereStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	// Particle glyphs, dimmed on the far hemisphere.
	plusFront    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	plusBack     = lipgloss.NewStyle().Foreground(lipgloss.Color("95"))
	minusFront   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	minusBack    = lipgloss.NewStyle().Foreground(lipgloss.Color("24"))
	neutralFront = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	neutralBack  = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
)
