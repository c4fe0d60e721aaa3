package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quickfind/internal/domain"
)

// DocumentRenderer builds the colored documents shown in the pager
type DocumentRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	dim     lipgloss.Style
}

// NewDocumentRenderer creates a new document renderer
func NewDocumentRenderer() *DocumentRenderer {
	return &DocumentRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dim:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// Help renders the key reference
func (r *DocumentRenderer) Help(keys KeyMap) string {
	var b strings.Builder

	b.WriteString(r.title.Render("quickfind help"))
	b.WriteString("\n")

	for i, column := range keys.FullHelp() {
		if i == 0 {
			b.WriteString(r.section.Render("Results"))
		} else {
			b.WriteString(r.section.Render("Other"))
		}
		b.WriteString("\n")
		for _, k := range column {
			h := k.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", r.key.Render(h.Key), r.desc.Render(h.Desc)))
		}
		b.WriteString("\n")
	}

	b.WriteString(r.section.Render("Mouse"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-8s %s\n", r.key.Render("hover"), r.desc.Render("highlight a result")))
	b.WriteString(fmt.Sprintf("  %-8s %s\n", r.key.Render("click"), r.desc.Render("select a result")))
	b.WriteString(fmt.Sprintf("  %-8s %s\n", r.key.Render("✕"), r.desc.Render("clear the query")))
	b.WriteString("\n")
	b.WriteString(r.dim.Render("Any other key edits the query. Searches start once you stop typing."))

	return b.String()
}

// Results renders the current result list, one entry per block
func (r *DocumentRenderer) Results(query string, results []domain.Item) string {
	var b strings.Builder

	b.WriteString(r.title.Render(fmt.Sprintf("Results for %q (%d)", query, len(results))))
	b.WriteString("\n")
	for _, it := range results {
		b.WriteString(fmt.Sprintf("%s %s\n", r.dim.Render(fmt.Sprintf("#%d", it.ID)), r.key.Render(it.Title)))
		b.WriteString("    " + r.desc.Render(it.Description) + "\n")
	}
	return b.String()
}
