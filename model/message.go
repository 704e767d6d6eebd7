package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single entry of the active conversation log. Messages are
// immutable once appended; the log is only replaced wholesale when the
// user switches or starts a conversation.
type Message struct {
	ID        string
	Role      string // "user" or "assistant"
	Content   string
	Image     string // path of an attached image, if any
	Timestamp time.Time
}

func NewUserMessage(content, image string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      "user",
		Content:   content,
		Image:     image,
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now(),
	}
}

// DisplayTime renders the timestamp the way the thread view shows it.
func (m Message) DisplayTime() string {
	return m.Timestamp.Format("15:04")
}
