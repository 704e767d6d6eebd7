package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"

	appmodel "aula/model"
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if len(a.dataModel.Messages) == 0 && !a.dataModel.Typing {
		a.viewport.SetContent(a.theme.DimStyle.Render("Aún no hay mensajes. Escribe tu consulta académica."))
		return
	}

	var content strings.Builder

	for _, msg := range a.dataModel.Messages {
		timestamp := a.theme.DimStyle.Render(fmt.Sprintf("[%s]", msg.DisplayTime()))

		switch msg.Role {
		case "user":
			role := a.theme.UserStyle.Render("Tú")
			content.WriteString(a.formatUserMessage(timestamp, role, msg))
		default:
			role := a.theme.AssistantStyle.Render("Asistente")
			rendered := a.renderAssistantMarkdown(msg.Content)
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, rendered))
		}
	}

	if a.dataModel.Typing {
		indicator := fmt.Sprintf("%s %s", a.typingSpinner.View(),
			a.theme.DimStyle.Render("El asistente está escribiendo..."))
		content.WriteString(indicator)
		content.WriteString("\n")
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// formatUserMessage renders a user entry with a vertical bar down its left
// edge, attachment marker included.
func (a *AppView) formatUserMessage(timestamp, role string, msg appmodel.Message) string {
	bar := a.theme.UserStyle.Render("┃")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	if msg.Image != "" {
		marker := a.theme.DimStyle.Render(fmt.Sprintf("[imagen: %s]", filepath.Base(msg.Image)))
		result.WriteString(fmt.Sprintf("%s %s\n", bar, marker))
	}

	if msg.Content != "" {
		for _, line := range strings.Split(msg.Content, "\n") {
			result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
		}
	}

	result.WriteString("\n")

	return result.String()
}

// renderAssistantMarkdown renders assistant replies with go-term-markdown
// at the current viewport width. Replies are short, so rendering inline on
// every refresh is fine.
func (a *AppView) renderAssistantMarkdown(content string) string {
	width := a.width - 4
	if width < 20 {
		width = 76
	}

	rendered := markdown.Render(content, width, 0)
	return strings.TrimRight(string(rendered), "\n")
}
