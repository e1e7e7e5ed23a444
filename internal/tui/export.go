package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joesqua18-code/holidaybasics/internal/order"
)

// ExportModel writes the current order to a CSV file.
type ExportModel struct {
	app       *App
	nameInput textinput.Model
	idInput   textinput.Model
	focused   int
	width     int
	height    int
}

func NewExportModel(app *App) *ExportModel {
	name := textinput.New()
	name.Placeholder = "Customer name"
	name.CharLimit = 64
	name.Focus()

	id := textinput.New()
	id.Placeholder = "Customer ID"
	id.CharLimit = 32

	return &ExportModel{app: app, nameInput: name, idInput: id}
}

func (m *ExportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ExportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "shift+tab", "down", "up":
		m.focused = 1 - m.focused
		if m.focused == 0 {
			m.nameInput.Focus()
			m.idInput.Blur()
		} else {
			m.idInput.Focus()
			m.nameInput.Blur()
		}
		return m, textinput.Blink
	case "enter":
		return m.export()
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.nameInput, cmd = m.nameInput.Update(keyMsg)
	} else {
		m.idInput, cmd = m.idInput.Update(keyMsg)
	}
	return m, cmd
}

func (m *ExportModel) export() (tea.Model, tea.Cmd) {
	if m.app.Ledger.Len() == 0 {
		return m, Toast("No items in order", true)
	}

	name := strings.TrimSpace(m.nameInput.Value())
	id := strings.TrimSpace(m.idInput.Value())
	if id == "" {
		id = "N/A"
	}

	filename := order.ExportFilename(id, time.Now())
	f, err := os.Create(filename)
	if err != nil {
		return m, Toast("Failed to create export file", true)
	}
	defer f.Close()

	if err := order.Export(f, name, id, m.app.Ledger, m.app.All); err != nil {
		return m, Toast("Failed to export order", true)
	}
	return m, tea.Batch(
		ChangeScreen(BrowseScreen),
		Toast(fmt.Sprintf("Order exported to %s", filename), false),
	)
}

func (m *ExportModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Export Order"))
	b.WriteString("\n")

	items, cases := m.app.Ledger.Summary()

	var form strings.Builder
	form.WriteString(labelStyle.Render("Customer name"))
	form.WriteString("\n")
	form.WriteString(m.nameInput.View())
	form.WriteString("\n\n")
	form.WriteString(labelStyle.Render("Customer ID"))
	form.WriteString("\n")
	form.WriteString(m.idInput.View())
	form.WriteString("\n\n")
	form.WriteString(fmt.Sprintf("%d items, %d cases", items, cases))
	b.WriteString(formStyle.Render(form.String()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("Tab switch field • Enter export • Esc back"))
	return b.String()
}
