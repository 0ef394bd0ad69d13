package ui

import (
	"github.com/charmbracelet/lipgloss"

	"electrorustogram/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	gridStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	bandStyles = map[model.ColorBand]lipgloss.Style{
		model.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	keybindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	keybindDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

func bandStyle(b model.ColorBand) lipgloss.Style {
	if s, ok := bandStyles[b]; ok {
		return s
	}
	return gridStyle
}
