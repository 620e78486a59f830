package tui

import "github.com/charmbracelet/lipgloss"

// styleSet holds the lipgloss styles the demo renders with. The accent color
// comes from config.
type styleSet struct {
	Title    lipgloss.Style
	Box      lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
}

func newStyles(accent string) styleSet {
	color := lipgloss.Color(accent)
	return styleSet{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color).
			MarginBottom(1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(1, 2),
		Item: lipgloss.NewStyle().
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(0).
			Foreground(color).
			Bold(true).
			SetString("> "),
		Status: lipgloss.NewStyle().
			Faint(true).
			MarginTop(1),
		Help: lipgloss.NewStyle().
			Faint(true).
			MarginTop(1),
	}
}
