package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Clear       lipgloss.Style
	Spinner     lipgloss.Style
	Error       lipgloss.Style
	Empty       lipgloss.Style
	ItemTitle   lipgloss.Style
	ItemDesc    lipgloss.Style
	Highlight   lipgloss.Style
	HighlightBg lipgloss.Style
	Scroll      lipgloss.Style
	Link        lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Clear:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ItemTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemDesc:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
