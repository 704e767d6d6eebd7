package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultConversationTitle is the placeholder until the first user message
// names the conversation.
const DefaultConversationTitle = "Nueva conversación"

// titleMaxLen is the number of characters kept when deriving a title from
// the first user message.
const titleMaxLen = 40

// ConversationSummary is a sidebar entry. The message log itself lives in
// the store, keyed by the conversation id.
type ConversationSummary struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// TitleFromMessage derives a conversation title from its first user
// message: the first 40 characters, with "..." appended when truncated.
func TitleFromMessage(text string) string {
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(runes) <= titleMaxLen {
		return string(runes)
	}
	return string(runes[:titleMaxLen]) + "..."
}

// RelativeDate renders a conversation date the way the sidebar shows it.
func RelativeDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Ahora"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "Hace 1 minuto"
		}
		return fmt.Sprintf("Hace %d minutos", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "Hace 1 hora"
		}
		return fmt.Sprintf("Hace %d horas", hours)
	case d < 48*time.Hour:
		return "Ayer"
	default:
		return t.Format("2 Jan 2006")
	}
}
