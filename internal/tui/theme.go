package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so every color is a lipgloss.AdaptiveColor and "faint" styling is applied
// only on dark backgrounds (faint on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorAccent     = ac("25", "39")
	colorError      = ac("124", "203")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")

	styleTab = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
	styleTabActive = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	styleSelectedRow = lipgloss.NewStyle().
				Background(colorSelectedBg).
				Foreground(colorSelectedFg)
	styleArchived = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)

	styleStatusBar = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusErr = lipgloss.NewStyle().Foreground(colorError)

	styleModalTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleModalBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
