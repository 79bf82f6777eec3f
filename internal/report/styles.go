// Package report renders a dataset as a static terminal dashboard.
package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/newsdesk/internal/engine/taxonomy"
)

// Palette
var (
	Primary = lipgloss.Color("#101F38")
	Muted   = lipgloss.Color("#8a94a6")
	Danger  = lipgloss.Color("#e53935")
	Caution = lipgloss.Color("#FFC107")
)

// CategoryColors gives each category label a fixed chart color.
var CategoryColors = map[string]lipgloss.Color{
	taxonomy.Alert:    lipgloss.Color("#FF4B4B"),
	taxonomy.Military: lipgloss.Color("#466964"),
	taxonomy.Attack:   lipgloss.Color("#FF8C00"),
	taxonomy.Casualty: lipgloss.Color("#800000"),
	taxonomy.Hostage:  lipgloss.Color("#4B0082"),
	taxonomy.Update:   lipgloss.Color("#1E90FF"),
	taxonomy.Fallback: lipgloss.Color("#808080"),
}

// Styles holds the styled components of a report.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Body    lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Metric  lipgloss.Style
}

// DefaultStyles returns the report styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1),
		Body:    lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Error:   lipgloss.NewStyle().Foreground(Danger).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(Caution),
		Metric: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2),
	}
}

// labelStyle colors a category label, falling back to the plain body style.
func (s Styles) labelStyle(label string) lipgloss.Style {
	if c, ok := CategoryColors[label]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return s.Body
}
