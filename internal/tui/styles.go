package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Title       lipgloss.Style
	Location    lipgloss.Style
	Section     lipgloss.Style
	Chip        lipgloss.Style
	ChipOn      lipgloss.Style
	Operator    lipgloss.Style
	Card        lipgloss.Style
	CardCursor  lipgloss.Style
	Favorite    lipgloss.Style
	Count       lipgloss.Style
	Muted       lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	accent := lipgloss.Color("#bd93f9")
	muted := lipgloss.Color("#6272a4")
	text := lipgloss.Color("#f8f8f2")

	chip := lipgloss.NewStyle().Padding(0, 1).Foreground(text).Background(lipgloss.Color("#44475a"))

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Location:    lipgloss.NewStyle().Foreground(muted),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8be9fd")).MarginTop(1),
		Chip:        chip,
		ChipOn:      chip.Foreground(lipgloss.Color("#282a36")).Background(lipgloss.Color("#50fa7b")),
		Operator:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffb86c")),
		Card:        lipgloss.NewStyle().Foreground(text).PaddingLeft(2),
		CardCursor:  lipgloss.NewStyle().Foreground(accent).Bold(true).PaddingLeft(0),
		Favorite:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff79c6")),
		Count:       lipgloss.NewStyle().Foreground(muted),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
		Help:        lipgloss.NewStyle().Foreground(muted),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
