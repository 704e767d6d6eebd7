package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	appmodel "aula/model"
)

// conversationTitles adapts the summary list for fuzzy matching.
type conversationTitles []appmodel.ConversationSummary

func (c conversationTitles) String(i int) string { return c[i].Title }
func (c conversationTitles) Len() int            { return len(c) }

func (a *AppView) applyConversationFilter() {
	query := a.filterInput.Value()
	if query == "" {
		a.filteredConvs = nil
		return
	}

	matches := fuzzy.FindFrom(query, conversationTitles(a.dataModel.Conversations))
	filtered := make([]appmodel.ConversationSummary, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, a.dataModel.Conversations[match.Index])
	}
	a.filteredConvs = filtered
}

func (a AppView) renderSidebar() string {
	modalWidth := a.width - 10
	if modalWidth > 100 {
		modalWidth = 100
	}
	if modalWidth < 30 {
		modalWidth = a.width
	}
	modalHeight := a.height - 6

	if a.confirmDelete != nil {
		return a.renderDeleteConfirmation(modalWidth)
	}

	// Title section (no borders)
	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Conversaciones")

	// Header: filter input or count
	var header string
	if a.filterMode {
		header = a.filterInput.View()
	} else {
		total := len(a.dataModel.Conversations)
		if total == 1 {
			header = "1 conversación"
		} else {
			header = fmt.Sprintf("%d conversaciones", total)
		}
	}

	headerSection := lipgloss.NewStyle().
		Foreground(a.theme.dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(a.theme.dimColor).
		Render(header)

	displayList := a.conversationList()

	var lines []string
	maxLines := modalHeight - 8
	if maxLines < 3 {
		maxLines = 3
	}

	if len(displayList) == 0 {
		emptyMsg := "No hay conversaciones todavía."
		if a.filterMode {
			emptyMsg = "Sin coincidencias"
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(a.theme.dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))
	} else {
		startIdx := 0
		endIdx := len(displayList)

		// Scroll the window around the selection
		if len(displayList) > maxLines {
			if a.selectedConvIdx < maxLines/2 {
				endIdx = maxLines
			} else if a.selectedConvIdx >= len(displayList)-maxLines/2 {
				startIdx = len(displayList) - maxLines
			} else {
				startIdx = a.selectedConvIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		now := time.Now()

		for i := startIdx; i < endIdx && i < len(displayList); i++ {
			conv := displayList[i]

			indicator := "  "
			if i == a.selectedConvIdx {
				indicator = "▶ "
			}

			timeAgo := appmodel.RelativeDate(conv.UpdatedAt, now)

			maxTitleWidth := modalWidth - len(indicator) - runewidth.StringWidth(timeAgo) - 10
			title := runewidth.Truncate(conv.Title, maxTitleWidth, "...")

			isActive := conv.ID == a.dataModel.ActiveConversationID
			activeMarker := ""
			if isActive {
				activeMarker = " •"
			}

			titleStyled := title
			timeStyled := timeAgo
			if i == a.selectedConvIdx {
				titleStyled = lipgloss.NewStyle().Foreground(a.theme.successColor).Bold(true).Render(title)
				timeStyled = lipgloss.NewStyle().Foreground(a.theme.successColor).Render(timeAgo)
			} else if isActive {
				titleStyled = lipgloss.NewStyle().Foreground(a.theme.accentColor).Bold(true).Render(title)
			}

			// Spacing uses visual widths, the styled strings carry ANSI codes
			leftVisual := len(indicator) + runewidth.StringWidth(title) + len(activeMarker)
			spacing := modalWidth - 4 - leftVisual - runewidth.StringWidth(timeAgo)
			if spacing < 2 {
				spacing = 2
			}

			line := fmt.Sprintf("  %s%s%s%s%s  ",
				indicator, titleStyled,
				lipgloss.NewStyle().Foreground(a.theme.accentColor).Render(activeMarker),
				strings.Repeat(" ", spacing), timeStyled)

			lines = append(lines, lipgloss.NewStyle().Width(modalWidth).Render(line))
		}
	}

	emptyLine := strings.Repeat(" ", modalWidth)
	lines = append([]string{emptyLine}, lines...)
	lines = append(lines, emptyLine)

	var footerText string
	if a.filterMode {
		footerText = a.theme.FormatFooter("Escribe", "para filtrar", "Alt+J/K", "Navegar", "Enter", "Abrir", "Esc", "Cancelar")
	} else {
		footerText = a.theme.FormatFooter("/", "Filtrar", "j/k", "Navegar", "Enter", "Abrir", "n", "Nueva", "d", "Eliminar", "Esc", "Cerrar")
	}

	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(a.theme.dimColor).
		Render(footerText)

	sections := []string{titleSection, headerSection, strings.Join(lines, "\n"), footerSection}
	content := strings.Join(sections, "\n")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a AppView) renderDeleteConfirmation(modalWidth int) string {
	if modalWidth > 60 {
		modalWidth = 60
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.theme.warningColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("⚠ Eliminar conversación")

	warningText := lipgloss.NewStyle().Foreground(a.theme.dangerColor).Render("Esta acción no se puede deshacer.")
	message := fmt.Sprintf("¿Seguro que quieres eliminar:\n\n\"%s\"\n\n%s", a.confirmDelete.Title, warningText)

	var messageLines []string
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))
	messageStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Center)
	for _, line := range strings.Split(message, "\n") {
		messageLines = append(messageLines, messageStyle.Render(line))
	}
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(a.theme.dimColor).
		Width(modalWidth).
		Render(strings.Join(messageLines, "\n"))

	footer := a.theme.FormatFooter("y", "Sí", "n", "No")
	footerSection := lipgloss.NewStyle().
		Foreground(a.theme.dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(a.theme.dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, messageSection, footerSection}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
