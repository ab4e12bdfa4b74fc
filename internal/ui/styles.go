package ui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles used across the views.
type Styles struct {
	HeaderCell  lipgloss.Style
	Cell        lipgloss.Style
	SelectedRow lipgloss.Style
	Highlight   lipgloss.Style
	ActiveBadge lipgloss.Style
	InactiveTag lipgloss.Style
	Muted       lipgloss.Style
	Notice      lipgloss.Style
	Danger      lipgloss.Style
	FilterBar   lipgloss.Style
	EditCell    lipgloss.Style
	ModalBox    lipgloss.Style
	Title       lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		HeaderCell:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Cell:        lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().Reverse(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		ActiveBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		InactiveTag: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Danger:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		FilterBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		EditCell:    lipgloss.NewStyle().Underline(true),
		ModalBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
}
