package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the lipgloss styles for one of the two palettes. The dark
// palette uses the bright ANSI range, the light palette the normal range so
// text stays readable on white terminals.
type Theme struct {
	Dark bool

	dimColor     lipgloss.Color
	accentColor  lipgloss.Color
	successColor lipgloss.Color
	warningColor lipgloss.Color
	dangerColor  lipgloss.Color

	// User message style
	UserStyle lipgloss.Style

	// Assistant message style
	AssistantStyle lipgloss.Style

	// System/timestamp style
	DimStyle lipgloss.Style

	// Title style
	TitleStyle lipgloss.Style

	// Status bar style
	StatusStyle lipgloss.Style

	SelectedStyle lipgloss.Style

	ErrorStyle lipgloss.Style
}

func NewTheme(dark bool) Theme {
	t := Theme{Dark: dark}

	if dark {
		t.dimColor = lipgloss.Color("7")
		t.accentColor = lipgloss.Color("12")
		t.successColor = lipgloss.Color("10")
		t.warningColor = lipgloss.Color("11")
		t.dangerColor = lipgloss.Color("9")
	} else {
		t.dimColor = lipgloss.Color("8")
		t.accentColor = lipgloss.Color("4")
		t.successColor = lipgloss.Color("2")
		t.warningColor = lipgloss.Color("3")
		t.dangerColor = lipgloss.Color("1")
	}

	t.UserStyle = lipgloss.NewStyle().
		Foreground(t.successColor).
		Bold(true)
	// NO .Background() = transparent!

	t.AssistantStyle = lipgloss.NewStyle().
		Foreground(t.accentColor)

	t.DimStyle = lipgloss.NewStyle().
		Foreground(t.dimColor)

	t.TitleStyle = lipgloss.NewStyle().
		Bold(true)

	t.StatusStyle = lipgloss.NewStyle().
		Foreground(t.dimColor)

	t.SelectedStyle = lipgloss.NewStyle().
		Foreground(t.warningColor).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.dangerColor).
		Bold(true)

	return t
}

// FormatFooter formats a footer string with alternating keys and descriptions.
// Keys remain default color, descriptions are rendered in accent+bold.
// Usage: FormatFooter("j/k", "Navegar", "Enter", "Abrir", "Esc", "Cerrar")
func (t Theme) FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(t.accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
