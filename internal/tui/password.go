package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
)

// PasswordModel is the customer-mode access gate. Retries are unlimited;
// a wrong password just clears the input and shows the inline error.
type PasswordModel struct {
	app      *App
	input    textinput.Model
	errText  string
	width    int
	height   int
}

func NewPasswordModel(app *App) *PasswordModel {
	input := textinput.New()
	input.Placeholder = "password"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 64
	input.Focus()
	return &PasswordModel{app: app, input: input}
}

func (m *PasswordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PasswordModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *PasswordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "enter" {
		if !m.app.Session.Authenticate(m.input.Value()) {
			m.errText = "Incorrect password. Please try again."
			m.input.SetValue("")
			return m, nil
		}
		m.errText = ""
		cfg := m.app.Session.Config()
		src, found := catalog.FindSource(m.app.Sources, cfg.Catalog)
		if !found {
			m.errText = fmt.Sprintf("Catalog %q is not configured.", cfg.Catalog)
			return m, nil
		}
		return m, func() tea.Msg { return LoginMsg{Source: src} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

func (m *PasswordModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Holiday Basics — Customer Access"))
	b.WriteString("\n")

	var form strings.Builder
	form.WriteString(labelStyle.Render("Enter access password"))
	form.WriteString("\n\n")
	form.WriteString(m.input.View())
	if m.errText != "" {
		form.WriteString("\n\n")
		form.WriteString(errorStyle.Render(m.errText))
	}
	b.WriteString(formStyle.Render(form.String()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter to continue • Ctrl+C to quit"))
	return b.String()
}
