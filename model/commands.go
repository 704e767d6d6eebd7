package model

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aula/api"
	"aula/config"
	"aula/storage"
)

// BuildChatRequest assembles the wire payload for a completion: the fixed
// system instruction followed by every message of the active log that has
// textual content. Local roles map to the backend vocabulary as
// "user" -> user and anything else -> assistant.
func (m *Model) BuildChatRequest() api.ChatRequest {
	messages := []api.ChatMessage{
		{Role: api.RoleSystem, Content: m.Config.SystemPrompt},
	}

	for _, msg := range m.Messages {
		if msg.Content == "" {
			continue
		}
		role := api.RoleAssistant
		if msg.Role == "user" {
			role = api.RoleUser
		}
		messages = append(messages, api.ChatMessage{Role: role, Content: msg.Content})
	}

	return api.ChatRequest{
		Messages:    messages,
		Temperature: m.Config.Temperature,
		MaxTokens:   m.Config.MaxTokens,
	}
}

// SubmitForCompletion marks the model busy and returns the command that
// performs the chat completion. The caller must clear Typing when the
// ChatResultMsg arrives; between the two the flag covers the whole span
// of the request.
func (m *Model) SubmitForCompletion() tea.Cmd {
	m.Typing = true

	req := m.BuildChatRequest()
	backend := m.Backend

	return func() tea.Msg {
		resp, err := backend.Chat(context.Background(), req)
		if err != nil {
			return ChatResultMsg{Err: err}
		}
		return ChatResultMsg{Reply: resp.Reply, Model: resp.Model}
	}
}

// AnalyzeImageCmd uploads the image at path for description.
func (m *Model) AnalyzeImageCmd(path string) tea.Cmd {
	backend := m.Backend
	return func() tea.Msg {
		resp, err := backend.AnalyzeImage(context.Background(), path)
		if err != nil {
			return VisionResultMsg{Err: err}
		}
		return VisionResultMsg{Description: resp.Result.Description}
	}
}

// TranscribeCmd uploads the audio capture at path for transcription.
func (m *Model) TranscribeCmd(path string) tea.Cmd {
	backend := m.Backend
	return func() tea.Msg {
		text, err := backend.Transcribe(context.Background(), path)
		if err != nil {
			return TranscriptResultMsg{Err: err}
		}
		return TranscriptResultMsg{Text: text}
	}
}

// SaveActiveConversation persists the active conversation and its log.
func (m *Model) SaveActiveConversation() tea.Cmd {
	if m.Store == nil {
		return nil
	}

	active := m.ActiveConversation()
	if active == nil {
		return nil
	}
	active.UpdatedAt = time.Now()

	conv := &storage.Conversation{
		ID:    active.ID,
		Title: active.Title,
	}
	for _, msg := range m.Messages {
		conv.Messages = append(conv.Messages, storage.Message{
			ID:        msg.ID,
			Role:      msg.Role,
			Content:   msg.Content,
			Image:     msg.Image,
			Timestamp: msg.Timestamp,
		})
	}

	store := m.Store
	return func() tea.Msg {
		err := store.Save(conv)
		if err == nil {
			err = store.SaveCurrentConversationID(conv.ID)
		}
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] failed to save conversation: %v", err)
		}
		return ConversationSavedMsg{Err: err}
	}
}
