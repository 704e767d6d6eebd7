package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "aula/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	theme Theme

	// Typing indicator spinner (bubbles/spinner)
	typingSpinner spinner.Model

	// Composer state
	composerMode ComposerMode

	// Image attach prompt
	imagePromptMode bool
	imagePathInput  textinput.Model

	// Audio capture; lastCapture stays on disk until the next recording
	recorder    *Recorder
	lastCapture string

	// Conversation manager
	selectedConvIdx int
	filterMode      bool
	filterInput     textinput.Model
	filteredConvs   []appmodel.ConversationSummary
	confirmDelete   *appmodel.ConversationSummary

	// Transient notice shown in the status bar until the next keypress
	notice string

	// LoggedOut is set when the user logs out rather than quitting; the
	// main loop returns to the login screen.
	LoggedOut bool
}

func NewAppView(dataModel *appmodel.Model) AppView {
	ta := textarea.New()
	ta.Placeholder = "Escribe tu consulta académica..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	filterInput := textinput.New()
	filterInput.Prompt = "Filtro: "
	filterInput.CharLimit = 64

	imagePathInput := textinput.New()
	imagePathInput.Prompt = "Imagen: "
	imagePathInput.Placeholder = "~/captura.png"
	imagePathInput.CharLimit = 256

	theme := NewTheme(dataModel.Session.DarkTheme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.AssistantStyle

	return AppView{
		dataModel:      dataModel,
		textarea:       ta,
		viewport:       vp,
		theme:          theme,
		typingSpinner:  sp,
		filterInput:    filterInput,
		imagePathInput: imagePathInput,
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.typingSpinner.Tick)
}

func (a AppView) View() string {
	if !a.ready {
		return "Cargando AULA..."
	}

	// The conversation manager replaces the whole screen while open
	if a.dataModel.Session.SidebarOpen {
		return a.renderSidebar()
	}

	// Title bar - "AULA - <conversation title>"
	appText := a.theme.AssistantStyle.Render("AULA")
	assistantText := a.theme.TitleStyle.Render(" - Asistente Académico UCACUE")
	convTitle := appmodel.DefaultConversationTitle
	if conv := a.dataModel.ActiveConversation(); conv != nil && conv.Title != "" {
		convTitle = conv.Title
	}
	convText := a.theme.UserStyle.Render(fmt.Sprintf(" - %s", convTitle))
	title := appText + assistantText + convText

	if a.composerMode == ComposerRecordingAudio {
		title += a.theme.ErrorStyle.Render(fmt.Sprintf("  ● %s %s", a.composerMode, a.typingSpinner.View()))
	} else if a.composerMode == ComposerUploadingImage {
		title += a.theme.DimStyle.Render(fmt.Sprintf("  %s %s", a.composerMode, a.typingSpinner.View()))
	}

	separator := ""

	viewportView := a.viewport.View()

	// Input area: path prompt while attaching, textarea otherwise
	inputView := a.textarea.View()
	if a.imagePromptMode {
		inputView = a.imagePathInput.View()
	}

	statusBar := a.renderStatusBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

func (a AppView) renderStatusBar() string {
	if a.notice != "" {
		return a.theme.StatusStyle.Render(a.notice)
	}

	if a.imagePromptMode {
		return a.theme.StatusStyle.Render(
			a.theme.FormatFooter("Enter", "Adjuntar", "Esc", "Cancelar"))
	}

	descStyle := lipgloss.NewStyle().Foreground(a.theme.successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+S %s  Alt+N %s  Alt+I %s  Alt+R %s  Alt+Y %s  Alt+T %s  Alt+L %s  Enter %s",
		descStyle.Render("Salir"),
		descStyle.Render("Conversaciones"),
		descStyle.Render("Nueva"),
		descStyle.Render("Imagen"),
		descStyle.Render("Grabar"),
		descStyle.Render("Copiar"),
		descStyle.Render("Tema"),
		descStyle.Render("Cerrar sesión"),
		descStyle.Render("Enviar"),
	)
	return a.theme.StatusStyle.Render(statusBar)
}

func (a AppView) conversationList() []appmodel.ConversationSummary {
	if a.filterMode && a.filterInput.Value() != "" {
		return a.filteredConvs
	}
	return a.dataModel.Conversations
}
