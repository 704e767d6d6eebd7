package ui

import (
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"aula/config"
	appmodel "aula/model"
)

const (
	chatErrorText          = "❌ Error al conectar con el servidor. Verifica que el backend esté activo."
	visionErrorText        = "❌ Error al analizar la imagen."
	visionEmptyResultText  = "No se pudo analizar la imagen."
	audioErrorText         = "❌ Error al procesar el audio."
	audioEmptyResultText   = "No se pudo procesar el audio."
	busyNoticeText         = "Espera a que termine la operación actual"
	recorderFailNoticeText = "No se pudo iniciar la grabación"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Title + separator above, textarea (3 lines) + status bar below
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 6
		if a.viewport.Height < 1 {
			a.viewport.Height = 1
		}
		a.textarea.SetWidth(msg.Width - 2)
		a.imagePathInput.Width = msg.Width - 12

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.typingSpinner, cmd = a.typingSpinner.Update(msg)
		if a.dataModel.Typing {
			// Keep the indicator animating while the reply is pending
			a.updateViewportContent(false)
		}
		return a, cmd

	case appmodel.ChatResultMsg:
		a.dataModel.Typing = false
		a.composerMode = ComposerIdle

		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[AppView] chat failed: %v", msg.Err)
			}
			a.dataModel.Messages = append(a.dataModel.Messages, appmodel.NewAssistantMessage(chatErrorText))
		} else {
			a.dataModel.Messages = append(a.dataModel.Messages, appmodel.NewAssistantMessage(msg.Reply))
		}

		a.updateViewportContent(true)
		return a, a.dataModel.SaveActiveConversation()

	case appmodel.VisionResultMsg:
		a.composerMode = ComposerIdle

		text := msg.Description
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[AppView] image analysis failed: %v", msg.Err)
			}
			text = visionErrorText
		} else if text == "" {
			text = visionEmptyResultText
		}

		// The description goes through the same path as a typed message
		cmd := a.submitText(text)
		return a, cmd

	case appmodel.TranscriptResultMsg:
		a.composerMode = ComposerIdle

		text := msg.Text
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[AppView] transcription failed: %v", msg.Err)
			}
			text = audioErrorText
		} else if text == "" {
			text = audioEmptyResultText
		}

		cmd := a.submitText(text)
		return a, cmd

	case appmodel.ConversationSavedMsg:
		// Failures are already in the debug log; nothing to show
		return a, nil

	case tea.KeyMsg:
		a.notice = ""

		if a.dataModel.Session.SidebarOpen {
			return a.handleSidebarKey(msg)
		}
		if a.imagePromptMode {
			return a.handleImagePromptKey(msg)
		}
		return a.handleChatKey(msg)
	}

	// Non-key messages (cursor blinks and friends) still drive the inputs
	var taCmd, vpCmd, inCmd tea.Cmd
	a.textarea, taCmd = a.textarea.Update(msg)
	a.viewport, vpCmd = a.viewport.Update(msg)
	a.imagePathInput, inCmd = a.imagePathInput.Update(msg)
	cmds = append(cmds, taCmd, vpCmd, inCmd)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "alt+q":
		a.stopRecorderIfActive()
		return a, tea.Quit

	case "alt+l":
		a.stopRecorderIfActive()
		a.dataModel.ResetSession()
		a.LoggedOut = true
		return a, tea.Quit

	case "alt+t":
		a.dataModel.Session.DarkTheme = !a.dataModel.Session.DarkTheme
		a.theme = NewTheme(a.dataModel.Session.DarkTheme)
		a.typingSpinner.Style = a.theme.AssistantStyle
		a.updateViewportContent(false)
		return a, nil

	case "alt+n":
		if a.busy() {
			a.notice = busyNoticeText
			return a, nil
		}
		a.dataModel.StartNewConversation()
		a.textarea.Reset()
		a.updateViewportContent(true)
		return a, nil

	case "alt+s":
		if a.busy() {
			// An in-flight result must land in the conversation that
			// started it; switching is blocked until it arrives
			a.notice = busyNoticeText
			return a, nil
		}
		a.openSidebar()
		return a, nil

	case "alt+y":
		a.copyLastReply()
		return a, nil

	case "alt+i":
		if a.busy() {
			a.notice = busyNoticeText
			return a, nil
		}
		a.imagePromptMode = true
		a.imagePathInput.SetValue("")
		return a, a.imagePathInput.Focus()

	case "alt+r":
		return a.toggleRecording()

	case "enter":
		if a.busy() {
			a.notice = busyNoticeText
			return a, nil
		}
		text := strings.TrimSpace(a.textarea.Value())
		if text == "" {
			return a, nil
		}
		a.textarea.Reset()
		cmd := a.submitText(text)
		return a, cmd
	}

	var taCmd, vpCmd tea.Cmd
	a.textarea, taCmd = a.textarea.Update(msg)
	a.viewport, vpCmd = a.viewport.Update(msg)
	return a, tea.Batch(taCmd, vpCmd)
}

// busy reports whether an outbound operation blocks new submissions.
func (a AppView) busy() bool {
	return a.composerMode.Busy() || a.dataModel.Typing
}

// submitText appends text as a user message and dispatches the completion.
// The first user message of a conversation also names it.
func (a *AppView) submitText(text string) tea.Cmd {
	if !a.dataModel.AppendUserMessage(text, "") {
		return nil
	}

	if len(a.dataModel.Messages) == 1 {
		a.dataModel.UpdateActiveTitle(text)
	}

	a.composerMode = ComposerSubmittingText
	cmd := a.dataModel.SubmitForCompletion()
	a.updateViewportContent(true)

	return tea.Batch(cmd, a.dataModel.SaveActiveConversation(), a.typingSpinner.Tick)
}

func (a AppView) handleImagePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.imagePromptMode = false
		a.imagePathInput.Blur()
		return a, nil

	case "enter":
		path := config.ExpandPath(strings.TrimSpace(a.imagePathInput.Value()))
		if path == "" {
			return a, nil
		}
		if !IsImagePath(path) {
			a.notice = "Solo se admiten imágenes (png, jpg, jpeg, gif, bmp, webp)"
			return a, nil
		}
		if !config.FileExists(path) {
			a.notice = "No existe el archivo: " + path
			return a, nil
		}

		a.imagePromptMode = false
		a.imagePathInput.Blur()

		// The attachment itself is logged without a remote call; the
		// analysis result arrives as a VisionResultMsg
		a.dataModel.AppendUserMessage("", path)
		a.composerMode = ComposerUploadingImage
		a.updateViewportContent(true)

		return a, tea.Batch(
			a.dataModel.AnalyzeImageCmd(path),
			a.dataModel.SaveActiveConversation(),
			a.typingSpinner.Tick,
		)
	}

	var cmd tea.Cmd
	a.imagePathInput, cmd = a.imagePathInput.Update(msg)
	return a, cmd
}

func (a AppView) toggleRecording() (tea.Model, tea.Cmd) {
	if a.composerMode == ComposerRecordingAudio {
		recorder := a.recorder
		a.recorder = nil

		path, err := recorder.Stop()
		if err != nil {
			a.composerMode = ComposerIdle
			a.notice = "La grabación no produjo audio"
			return a, nil
		}

		// The previous capture stops being playable now
		if a.lastCapture != "" && a.lastCapture != path {
			// Best effort; a leaked temp file is harmless
			_ = os.Remove(a.lastCapture)
		}
		a.lastCapture = path

		a.composerMode = ComposerSubmittingText
		return a, tea.Batch(a.dataModel.TranscribeCmd(path), a.typingSpinner.Tick)
	}

	if a.busy() {
		a.notice = busyNoticeText
		return a, nil
	}

	recorder, err := StartRecorder(a.dataModel.Config.RecorderCommand)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[AppView] recorder start failed: %v", err)
		}
		a.notice = recorderFailNoticeText
		return a, nil
	}

	a.recorder = recorder
	a.composerMode = ComposerRecordingAudio
	return a, a.typingSpinner.Tick
}

func (a *AppView) stopRecorderIfActive() {
	if a.recorder != nil {
		_, _ = a.recorder.Stop()
		a.recorder = nil
	}
}

func (a *AppView) copyLastReply() {
	for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
		msg := a.dataModel.Messages[i]
		if msg.Role == "assistant" && msg.Content != "" {
			if err := clipboard.WriteAll(msg.Content); err != nil {
				a.notice = "No se pudo copiar al portapapeles"
				return
			}
			a.notice = "Respuesta copiada al portapapeles"
			return
		}
	}
	a.notice = "No hay respuesta que copiar"
}

func (a *AppView) openSidebar() {
	a.dataModel.Session.SidebarOpen = true
	a.filterMode = false
	a.filterInput.SetValue("")
	a.filteredConvs = nil
	a.confirmDelete = nil

	a.selectedConvIdx = 0
	for i, c := range a.dataModel.Conversations {
		if c.ID == a.dataModel.ActiveConversationID {
			a.selectedConvIdx = i
			break
		}
	}
}

func (a AppView) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDelete != nil {
		switch msg.String() {
		case "y", "enter":
			a.dataModel.DeleteConversation(a.confirmDelete.ID)
			a.confirmDelete = nil
			a.applyConversationFilter()
			if a.selectedConvIdx >= len(a.conversationList()) {
				a.selectedConvIdx = len(a.conversationList()) - 1
			}
			if a.selectedConvIdx < 0 {
				a.selectedConvIdx = 0
			}
			a.updateViewportContent(true)
		case "n", "esc":
			a.confirmDelete = nil
		}
		return a, nil
	}

	if a.filterMode {
		switch msg.String() {
		case "esc":
			a.filterMode = false
			a.filterInput.Blur()
			a.filterInput.SetValue("")
			a.filteredConvs = nil
			a.selectedConvIdx = 0
			return a, nil

		case "enter":
			return a.selectHighlightedConversation()

		case "up", "alt+k":
			if a.selectedConvIdx > 0 {
				a.selectedConvIdx--
			}
			return a, nil

		case "down", "alt+j":
			if a.selectedConvIdx < len(a.conversationList())-1 {
				a.selectedConvIdx++
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		a.applyConversationFilter()
		a.selectedConvIdx = 0
		return a, cmd
	}

	switch msg.String() {
	case "esc", "alt+s":
		a.dataModel.Session.SidebarOpen = false
		return a, nil

	case "ctrl+c", "alt+q":
		a.stopRecorderIfActive()
		return a, tea.Quit

	case "up", "k":
		if a.selectedConvIdx > 0 {
			a.selectedConvIdx--
		}
		return a, nil

	case "down", "j":
		if a.selectedConvIdx < len(a.conversationList())-1 {
			a.selectedConvIdx++
		}
		return a, nil

	case "enter":
		return a.selectHighlightedConversation()

	case "n":
		if a.busy() {
			a.notice = busyNoticeText
			return a, nil
		}
		a.dataModel.StartNewConversation()
		a.textarea.Reset()
		a.updateViewportContent(true)
		return a, nil

	case "d":
		list := a.conversationList()
		if a.selectedConvIdx < len(list) {
			conv := list[a.selectedConvIdx]
			a.confirmDelete = &conv
		}
		return a, nil

	case "/":
		a.filterMode = true
		a.filteredConvs = nil
		a.filterInput.SetValue("")
		return a, a.filterInput.Focus()
	}

	return a, nil
}

func (a AppView) selectHighlightedConversation() (tea.Model, tea.Cmd) {
	if a.busy() {
		a.notice = busyNoticeText
		return a, nil
	}

	list := a.conversationList()
	if a.selectedConvIdx >= len(list) {
		return a, nil
	}

	a.dataModel.SelectConversation(list[a.selectedConvIdx].ID)
	a.filterMode = false
	a.filterInput.Blur()
	a.filterInput.SetValue("")
	a.filteredConvs = nil
	a.updateViewportContent(true)
	return a, textinput.Blink
}
