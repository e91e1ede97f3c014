package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)

	controlStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	addStyle = controlStyle.
			Foreground(colorGreen)

	focusedStyle = controlStyle.
			Foreground(colorBase).
			Background(colorLavender).
			BorderForeground(colorLavender)

	inertStyle = controlStyle.
			Foreground(colorOverlay1)

	helpStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
)
