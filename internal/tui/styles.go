package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	wordStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1).MarginBottom(1)
	meaningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	exampleStyle = lipgloss.NewStyle().Italic(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	activeModeStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	modeStyle       = lipgloss.NewStyle().Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
