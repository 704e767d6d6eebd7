package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"aula/config"
	appmodel "aula/model"
	"aula/model/testutil"
)

func newTestAppView(backend appmodel.Backend) AppView {
	cfg := &config.Config{
		BackendURL:   config.DefaultBackendURL,
		SystemPrompt: config.DefaultSystemPrompt,
		Temperature:  config.DefaultTemperature,
		MaxTokens:    config.DefaultMaxTokens,
	}
	dataModel := appmodel.NewModel(cfg, backend, nil)
	dataModel.Session.Authenticated = true
	return NewAppView(dataModel)
}

func TestChatFailureAppendsSyntheticAssistantMessage(t *testing.T) {
	a := newTestAppView(testutil.NewMockBackend())
	a.dataModel.AppendUserMessage("Hola", "")
	a.dataModel.Typing = true
	a.composerMode = ComposerSubmittingText

	updated, _ := a.Update(appmodel.ChatResultMsg{Err: errors.New("connection refused")})
	av := updated.(AppView)

	msgs := av.dataModel.Messages
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2 (user + synthetic assistant)", len(msgs))
	}
	last := msgs[1]
	if last.Role != "assistant" {
		t.Errorf("role = %q, want assistant", last.Role)
	}
	if last.Content != chatErrorText {
		t.Errorf("content = %q, want %q", last.Content, chatErrorText)
	}
	if av.dataModel.Typing {
		t.Error("expected Typing to clear after a failed completion")
	}
	if av.composerMode != ComposerIdle {
		t.Errorf("composer mode = %v, want idle", av.composerMode)
	}
}

func TestChatSuccessAppendsReply(t *testing.T) {
	a := newTestAppView(testutil.NewMockBackend())
	a.dataModel.AppendUserMessage("Hola", "")
	a.dataModel.Typing = true
	a.composerMode = ComposerSubmittingText

	updated, _ := a.Update(appmodel.ChatResultMsg{Reply: "¡Hola! ¿En qué puedo ayudarte?"})
	av := updated.(AppView)

	msgs := av.dataModel.Messages
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[1].Role != "assistant" || msgs[1].Content != "¡Hola! ¿En qué puedo ayudarte?" {
		t.Errorf("last message = %q/%q", msgs[1].Role, msgs[1].Content)
	}
	if av.dataModel.Typing {
		t.Error("expected Typing to clear after a completion")
	}
	if av.composerMode != ComposerIdle {
		t.Errorf("composer mode = %v, want idle", av.composerMode)
	}
}

func TestVisionResultSentAsUserMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  appmodel.VisionResultMsg
		want string
	}{
		{
			name: "description",
			msg:  appmodel.VisionResultMsg{Description: "Apuntes de clase sobre grafos."},
			want: "Apuntes de clase sobre grafos.",
		},
		{
			name: "analysis error",
			msg:  appmodel.VisionResultMsg{Err: errors.New("boom")},
			want: visionErrorText,
		},
		{
			name: "empty description",
			msg:  appmodel.VisionResultMsg{},
			want: visionEmptyResultText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAppView(testutil.NewMockBackend())
			a.composerMode = ComposerUploadingImage

			updated, cmd := a.Update(tt.msg)
			av := updated.(AppView)

			msgs := av.dataModel.Messages
			if len(msgs) != 1 {
				t.Fatalf("got %d messages, want 1", len(msgs))
			}
			if msgs[0].Role != "user" {
				t.Errorf("role = %q, want user (same path as a typed message)", msgs[0].Role)
			}
			if msgs[0].Content != tt.want {
				t.Errorf("content = %q, want %q", msgs[0].Content, tt.want)
			}

			// The text is submitted, not just logged
			if !av.dataModel.Typing {
				t.Error("expected a completion to be in flight")
			}
			if av.composerMode != ComposerSubmittingText {
				t.Errorf("composer mode = %v, want submitting", av.composerMode)
			}
			if cmd == nil {
				t.Error("expected a dispatch command")
			}
		})
	}
}

func TestTranscriptResultSentAsUserMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  appmodel.TranscriptResultMsg
		want string
	}{
		{
			name: "transcript",
			msg:  appmodel.TranscriptResultMsg{Text: "hola mundo"},
			want: "hola mundo",
		},
		{
			name: "transcription error",
			msg:  appmodel.TranscriptResultMsg{Err: errors.New("boom")},
			want: audioErrorText,
		},
		{
			name: "empty transcript",
			msg:  appmodel.TranscriptResultMsg{},
			want: audioEmptyResultText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAppView(testutil.NewMockBackend())
			a.composerMode = ComposerSubmittingText

			updated, cmd := a.Update(tt.msg)
			av := updated.(AppView)

			msgs := av.dataModel.Messages
			if len(msgs) != 1 {
				t.Fatalf("got %d messages, want 1", len(msgs))
			}
			if msgs[0].Role != "user" || msgs[0].Content != tt.want {
				t.Errorf("message = %q/%q, want user/%q", msgs[0].Role, msgs[0].Content, tt.want)
			}
			if !av.dataModel.Typing {
				t.Error("expected a completion to be in flight")
			}
			if cmd == nil {
				t.Error("expected a dispatch command")
			}
		})
	}
}

func TestSidebarBlockedWhileOperationInFlight(t *testing.T) {
	a := newTestAppView(testutil.NewMockBackend())
	a.composerMode = ComposerUploadingImage

	altS := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s"), Alt: true}
	updated, _ := a.Update(altS)
	av := updated.(AppView)

	if av.dataModel.Session.SidebarOpen {
		t.Error("expected the conversation manager to stay closed while an upload is in flight")
	}
	if av.notice != busyNoticeText {
		t.Errorf("notice = %q, want %q", av.notice, busyNoticeText)
	}
}

func TestSidebarSelectBlockedWhileTyping(t *testing.T) {
	a := newTestAppView(testutil.NewMockBackend())
	a.dataModel.StartNewConversation()
	a.openSidebar()
	a.selectedConvIdx = 1
	a.dataModel.Typing = true

	updated, _ := a.selectHighlightedConversation()
	av := updated.(AppView)

	if av.dataModel.ActiveConversationID != av.dataModel.Conversations[0].ID {
		t.Error("expected the active conversation to stay put while a reply is pending")
	}
	if av.notice != busyNoticeText {
		t.Errorf("notice = %q, want %q", av.notice, busyNoticeText)
	}
}
