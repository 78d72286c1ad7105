package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formstep/pkg/model"
)

// Styles groups the lipgloss styles used for terminal output.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Box     lipgloss.Style
}

// DefaultStyles returns the built-in colour scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Label:   lipgloss.NewStyle().Bold(true).Width(15),
		Value:   lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
	}
}

// PlainStyles drops colour and borders, keeping the label column aligned.
func PlainStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle().Width(15),
		Value:   lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Box:     lipgloss.NewStyle(),
	}
}

// RenderSummary formats the review rows as an aligned, boxed list.
func RenderSummary(summary model.Summary, styles Styles) string {
	rows := make([]string, 0, len(summary))
	for _, item := range summary {
		value := item.Value
		if strings.TrimSpace(value) == "" {
			value = styles.Muted.Render("(empty)")
		} else {
			value = styles.Value.Render(value)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, styles.Label.Render(item.Label+":"), value))
	}
	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
