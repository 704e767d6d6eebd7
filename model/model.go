package model

import (
	"context"

	"github.com/google/uuid"

	"aula/api"
	"aula/config"
	"aula/storage"
)

// Backend abstracts the assistant backend for the model layer.
//
// The interface lives here (not in the api package) so the model can be
// exercised in tests with a mock backend without importing api's HTTP
// machinery; api.Client satisfies it.
type Backend interface {
	// Chat sends the conversation history and returns the reply.
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)

	// AnalyzeImage uploads an image and returns its analysis.
	AnalyzeImage(ctx context.Context, path string) (*api.VisionResponse, error)

	// Transcribe uploads an audio capture and returns the transcript.
	Transcribe(ctx context.Context, path string) (string, error)
}

// SessionState is the page-lifetime UI state. It is created on startup
// and reset on logout; nothing here is ambient or global.
type SessionState struct {
	Authenticated bool
	DarkTheme     bool
	SidebarOpen   bool
}

// Model holds the core application data and business logic state: the
// ordered message log of the active conversation, the conversation list
// (newest first), and the typing indicator.
type Model struct {
	Config  *config.Config
	Backend Backend
	Store   *storage.ConversationStore

	Messages             []Message
	Conversations        []ConversationSummary
	ActiveConversationID string

	// Typing is true for the whole span of an in-flight chat completion,
	// set before dispatch and cleared on every exit path.
	Typing bool

	Session SessionState
}

// NewModel creates a Model, restoring the conversation list and the last
// active conversation from the store. With nothing to restore it starts a
// fresh conversation.
func NewModel(cfg *config.Config, backend Backend, store *storage.ConversationStore) *Model {
	m := &Model{
		Config:  cfg,
		Backend: backend,
		Store:   store,
		Session: SessionState{DarkTheme: cfg.DarkTheme},
	}

	if store != nil {
		if list, err := store.List(); err == nil {
			for _, meta := range list {
				m.Conversations = append(m.Conversations, ConversationSummary{
					ID:        meta.ID,
					Title:     meta.Title,
					UpdatedAt: meta.UpdatedAt,
				})
			}
		}

		if lastID, err := store.LoadCurrentConversationID(); err == nil && lastID != "" {
			for _, c := range m.Conversations {
				if c.ID == lastID {
					m.ActiveConversationID = lastID
					m.Messages = m.loadMessages(lastID)
					break
				}
			}
		}
	}

	if m.ActiveConversationID == "" {
		m.StartNewConversation()
	}

	return m
}

func (m *Model) loadMessages(conversationID string) []Message {
	if m.Store == nil {
		return nil
	}

	conv, err := m.Store.Load(conversationID)
	if err != nil || conv == nil {
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] failed to load conversation %s: %v", conversationID, err)
		}
		return nil
	}

	var messages []Message
	for _, sm := range conv.Messages {
		messages = append(messages, Message{
			ID:        sm.ID,
			Role:      sm.Role,
			Content:   sm.Content,
			Image:     sm.Image,
			Timestamp: sm.Timestamp,
		})
	}
	return messages
}

// ActiveConversation returns the summary the active pointer refers to, or
// nil when the list is empty.
func (m *Model) ActiveConversation() *ConversationSummary {
	for i := range m.Conversations {
		if m.Conversations[i].ID == m.ActiveConversationID {
			return &m.Conversations[i]
		}
	}
	return nil
}

// StartNewConversation creates a fresh conversation, prepends it to the
// list, makes it active, clears the log and closes the sidebar.
func (m *Model) StartNewConversation() {
	conv := &storage.Conversation{Title: DefaultConversationTitle}
	if m.Store != nil {
		if err := m.Store.Save(conv); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] failed to save new conversation: %v", err)
		}
		_ = m.Store.SaveCurrentConversationID(conv.ID)
	} else {
		conv.ID = uuid.New().String()
	}

	summary := ConversationSummary{
		ID:        conv.ID,
		Title:     conv.Title,
		UpdatedAt: conv.UpdatedAt,
	}

	m.Conversations = append([]ConversationSummary{summary}, m.Conversations...)
	m.ActiveConversationID = summary.ID
	m.Messages = nil
	m.Session.SidebarOpen = false
}

// SelectConversation makes id the active conversation, loads its stored
// message log and closes the sidebar. Unknown ids are ignored.
func (m *Model) SelectConversation(id string) {
	found := false
	for _, c := range m.Conversations {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return
	}

	m.ActiveConversationID = id
	m.Messages = m.loadMessages(id)
	m.Session.SidebarOpen = false

	if m.Store != nil {
		_ = m.Store.SaveCurrentConversationID(id)
	}
}

// DeleteConversation removes id from the list, keeping the relative order
// of the remaining entries. Deleting the active conversation selects the
// most recent remaining one; with nothing left a fresh conversation is
// started, so the active pointer never dangles.
func (m *Model) DeleteConversation(id string) {
	kept := m.Conversations[:0]
	for _, c := range m.Conversations {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.Conversations = kept

	if m.Store != nil {
		if err := m.Store.Delete(id); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] failed to delete conversation %s: %v", id, err)
		}
	}

	if id != m.ActiveConversationID {
		return
	}

	if len(m.Conversations) > 0 {
		m.SelectConversation(m.Conversations[0].ID)
	} else {
		m.StartNewConversation()
	}
}

// AppendUserMessage appends a user message to the log. It is a no-op when
// both text and image are empty; the returned flag reports whether a
// message was appended.
func (m *Model) AppendUserMessage(text, image string) bool {
	if text == "" && image == "" {
		return false
	}
	m.Messages = append(m.Messages, NewUserMessage(text, image))
	return true
}

// UpdateActiveTitle derives the active conversation's title from its
// first user message.
func (m *Model) UpdateActiveTitle(text string) {
	if conv := m.ActiveConversation(); conv != nil {
		conv.Title = TitleFromMessage(text)
	}
}

// ResetSession clears the per-login state. Called on logout.
func (m *Model) ResetSession() {
	m.Session = SessionState{DarkTheme: m.Config.DarkTheme}
	m.Messages = nil
	m.Typing = false
}
