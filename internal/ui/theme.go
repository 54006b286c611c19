package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Border   lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2CDCD")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6C7086")).Padding(0, 1),
	Focused:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#CBA6F7")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
}

// PlainTheme drops colour and borders, for dumb terminals and tests.
var PlainTheme = Theme{
	Title:    lipgloss.NewStyle(),
	Label:    lipgloss.NewStyle(),
	Value:    lipgloss.NewStyle(),
	Border:   lipgloss.NewStyle(),
	Focused:  lipgloss.NewStyle(),
	Selected: lipgloss.NewStyle(),
	Hint:     lipgloss.NewStyle(),
	Error:    lipgloss.NewStyle(),
	Success:  lipgloss.NewStyle(),
}

// ThemeByName maps the config theme setting to a Theme.
func ThemeByName(name string) Theme {
	if name == "plain" {
		return PlainTheme
	}
	return DefaultTheme
}
