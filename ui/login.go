package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type authScreen int

const (
	screenLogin authScreen = iota
	screenRegister
	screenDone
)

// LoginModel is the authentication gate shown before the chat view. The
// check is client-side only: any non-empty credentials pass. Register is
// the same gate with a confirmation field.
type LoginModel struct {
	screen       authScreen
	focusedField int

	userInput    textinput.Model
	passInput    textinput.Model
	confirmInput textinput.Model

	showPassword bool
	theme        Theme

	width  int
	height int

	err string
}

func NewLoginModel(darkTheme bool) LoginModel {
	userInput := textinput.New()
	userInput.Placeholder = "usuario"
	userInput.Width = 40
	userInput.CharLimit = 64
	userInput.Focus()

	passInput := textinput.New()
	passInput.Placeholder = "contraseña"
	passInput.Width = 40
	passInput.CharLimit = 64
	passInput.EchoMode = textinput.EchoPassword
	passInput.EchoCharacter = '•'

	confirmInput := textinput.New()
	confirmInput.Placeholder = "confirmar contraseña"
	confirmInput.Width = 40
	confirmInput.CharLimit = 64
	confirmInput.EchoMode = textinput.EchoPassword
	confirmInput.EchoCharacter = '•'

	return LoginModel{
		screen:       screenLogin,
		userInput:    userInput,
		passInput:    passInput,
		confirmInput: confirmInput,
		theme:        NewTheme(darkTheme),
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) fields() []*textinput.Model {
	if m.screen == screenRegister {
		return []*textinput.Model{&m.userInput, &m.passInput, &m.confirmInput}
	}
	return []*textinput.Model{&m.userInput, &m.passInput}
}

func (m *LoginModel) focusField(idx int) tea.Cmd {
	fields := m.fields()
	if idx < 0 {
		idx = len(fields) - 1
	}
	if idx >= len(fields) {
		idx = 0
	}
	m.focusedField = idx

	var cmd tea.Cmd
	for i, f := range fields {
		if i == idx {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

func (m *LoginModel) togglePasswordVisibility() {
	m.showPassword = !m.showPassword
	mode := textinput.EchoPassword
	if m.showPassword {
		mode = textinput.EchoNormal
	}
	m.passInput.EchoMode = mode
	m.confirmInput.EchoMode = mode
}

func (m *LoginModel) submit() {
	user := strings.TrimSpace(m.userInput.Value())
	pass := m.passInput.Value()

	if user == "" || pass == "" {
		m.err = "Usuario y contraseña son obligatorios"
		return
	}

	if m.screen == screenRegister && pass != m.confirmInput.Value() {
		m.err = "Las contraseñas no coinciden"
		return
	}

	m.err = ""
	m.screen = screenDone
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "alt+q":
			return m, tea.Quit

		case "tab", "down":
			return m, m.focusField(m.focusedField + 1)

		case "shift+tab", "up":
			return m, m.focusField(m.focusedField - 1)

		case "alt+v":
			m.togglePasswordVisibility()
			return m, nil

		case "alt+t":
			m.theme = NewTheme(!m.theme.Dark)
			return m, nil

		case "alt+r":
			if m.screen == screenLogin {
				m.screen = screenRegister
				m.err = ""
				return m, m.focusField(0)
			}
			return m, nil

		case "esc":
			if m.screen == screenRegister {
				m.screen = screenLogin
				m.err = ""
				m.confirmInput.SetValue("")
				return m, m.focusField(0)
			}
			return m, nil

		case "enter":
			m.submit()
			if m.screen == screenDone {
				return m, tea.Quit
			}
			return m, nil
		}

		fields := m.fields()
		var cmd tea.Cmd
		*fields[m.focusedField], cmd = fields[m.focusedField].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m LoginModel) View() string {
	if m.screen == screenDone {
		return ""
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.accentColor).
		Padding(0, 1)

	var sb strings.Builder

	title := "AULA — Asistente Académico UCACUE"
	subtitle := "Inicia sesión para continuar"
	if m.screen == screenRegister {
		subtitle = "Crea tu cuenta"
	}

	sb.WriteString("\n\n")
	sb.WriteString(centerText(m.theme.TitleStyle.Foreground(m.theme.successColor).Render(title), m.width))
	sb.WriteString("\n\n")
	sb.WriteString(centerText(m.theme.DimStyle.Render(subtitle), m.width))
	sb.WriteString("\n\n\n")

	for _, f := range m.fields() {
		sb.WriteString(centerText(inputStyle.Render(f.View()), m.width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n\n")

	var hint string
	if m.screen == screenRegister {
		hint = m.theme.FormatFooter(
			"Tab", "Cambiar campo",
			"Alt+V", "Ver contraseña",
			"Enter", "Registrarse",
			"Esc", "Volver",
		)
	} else {
		hint = m.theme.FormatFooter(
			"Tab", "Cambiar campo",
			"Alt+V", "Ver contraseña",
			"Alt+R", "Registrarse",
			"Enter", "Entrar",
		)
	}
	sb.WriteString(centerText(hint, m.width))

	if m.err != "" {
		sb.WriteString("\n\n")
		sb.WriteString(centerText(m.theme.ErrorStyle.Render(m.err), m.width))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Center, sb.String())
}

func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 {
		var sb strings.Builder
		for i, line := range lines {
			sb.WriteString(centerText(line, width))
			if i < len(lines)-1 {
				sb.WriteString("\n")
			}
		}
		return sb.String()
	}

	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}

	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// Authenticated reports whether the user completed the login flow (as
// opposed to quitting out of it).
func (m LoginModel) Authenticated() bool {
	return m.screen == screenDone
}

// DarkTheme returns the theme flag as the user left it, so the chat view
// starts with the same palette.
func (m LoginModel) DarkTheme() bool {
	return m.theme.Dark
}
