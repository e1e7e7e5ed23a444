package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joesqua18-code/holidaybasics/internal/customer"
	"github.com/joesqua18-code/holidaybasics/internal/models"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// LinkModel builds a customer link from the currently filtered products.
type LinkModel struct {
	app       *App
	codeInput textinput.Model
	passInput textinput.Model
	focused   int
	link      string
	tooLong   bool
	width     int
	height    int
}

func NewLinkModel(app *App) *LinkModel {
	code := textinput.New()
	code.Placeholder = "CUSTOMER CODE"
	code.CharLimit = 32
	code.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 64

	return &LinkModel{app: app, codeInput: code, passInput: pass}
}

func (m *LinkModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LinkModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LinkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "shift+tab", "down", "up":
		m.focused = 1 - m.focused
		if m.focused == 0 {
			m.codeInput.Focus()
			m.passInput.Blur()
		} else {
			m.passInput.Focus()
			m.codeInput.Blur()
		}
		return m, textinput.Blink
	case "enter":
		return m.generate()
	case "ctrl+y":
		if m.link == "" {
			return m, nil
		}
		if err := clipboardWriteAll(m.link); err != nil {
			return m, Toast("Failed to copy link", true)
		}
		return m, Toast("Customer link copied!", false)
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.codeInput, cmd = m.codeInput.Update(keyMsg)
	} else {
		m.passInput, cmd = m.passInput.Update(keyMsg)
	}
	return m, cmd
}

func (m *LinkModel) generate() (tea.Model, tea.Cmd) {
	code := strings.ToUpper(strings.TrimSpace(m.codeInput.Value()))
	password := m.passInput.Value()

	if code == "" {
		return m, Toast("Please enter a customer code", true)
	}
	if password == "" {
		return m, Toast("Please set a password", true)
	}
	if len(m.app.Filtered) == 0 {
		return m, Toast("No products selected! Apply filters first.", true)
	}

	cfg := &customer.Config{
		Code:          code,
		Password:      password,
		Catalog:       m.app.Source.ID,
		AllowedStyles: models.Styles(m.app.Filtered),
	}
	token, err := customer.EncodeLink(cfg)
	if err != nil {
		return m, Toast(err.Error(), true)
	}
	m.link, m.tooLong = customer.BuildLinkURL(m.app.BaseURL, token)
	return m, Toast(fmt.Sprintf("Config generated with %d products", len(cfg.AllowedStyles)), false)
}

func (m *LinkModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Generate Customer Link"))
	b.WriteString("\n")

	var form strings.Builder
	form.WriteString(labelStyle.Render("Customer code"))
	form.WriteString("\n")
	form.WriteString(m.codeInput.View())
	form.WriteString("\n\n")
	form.WriteString(labelStyle.Render("Password"))
	form.WriteString("\n")
	form.WriteString(m.passInput.View())
	form.WriteString("\n\n")
	form.WriteString(fmt.Sprintf("Products included: %d", len(m.app.Filtered)))
	b.WriteString(formStyle.Render(form.String()))
	b.WriteString("\n")

	if m.link != "" {
		b.WriteString(labelStyle.Render("Link: "))
		b.WriteString(m.link)
		b.WriteString("\n")
		if m.tooLong {
			b.WriteString(warningStyle.Render("Warning: link exceeds 2000 characters and may be rejected by some transports."))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("Tab switch field • Enter generate • Ctrl+Y copy • Esc back"))
	return b.String()
}
