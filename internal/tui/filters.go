package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/query"
)

// filterRow is one editable (field, operator, value) triple.
type filterRow struct {
	field int
	op    int
	value textinput.Model
}

const (
	colField = iota
	colOp
	colValue
)

type FilterModel struct {
	app    *App
	rows   []filterRow
	row    int
	col    int
	width  int
	height int
}

func NewFilterModel(app *App) *FilterModel {
	m := &FilterModel{app: app}
	m.addRow()
	return m
}

func newFilterRow() filterRow {
	value := textinput.New()
	value.Placeholder = "Value"
	value.CharLimit = 64
	value.Width = 20
	return filterRow{value: value}
}

func (m *FilterModel) addRow() {
	m.rows = append(m.rows, newFilterRow())
}

func (m *FilterModel) Init() tea.Cmd {
	return nil
}

func (m *FilterModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *FilterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab":
		m.setCol((m.col + 1) % 3)
		return m, textinput.Blink
	case "shift+tab":
		m.setCol((m.col + 2) % 3)
		return m, textinput.Blink
	case "up":
		if m.row > 0 {
			m.setRow(m.row - 1)
		}
		return m, nil
	case "down":
		if m.row < len(m.rows)-1 {
			m.setRow(m.row + 1)
		}
		return m, nil
	case "ctrl+a":
		m.addRow()
		m.setRow(len(m.rows) - 1)
		return m, nil
	case "ctrl+d":
		if len(m.rows) > 0 {
			m.rows = append(m.rows[:m.row], m.rows[m.row+1:]...)
			if m.row >= len(m.rows) {
				m.setRow(len(m.rows) - 1)
			}
		}
		return m, nil
	case "ctrl+r":
		m.rows = nil
		m.addRow()
		m.setRow(0)
		m.app.ResetFilters()
		return m, tea.Batch(ChangeScreen(BrowseScreen), Toast("Filters reset", false))
	case "enter":
		return m.apply()
	}

	if m.row >= len(m.rows) {
		return m, nil
	}
	row := &m.rows[m.row]
	switch m.col {
	case colField:
		switch keyMsg.String() {
		case "left", "h":
			row.field = (row.field + len(models.FilterFields) - 1) % len(models.FilterFields)
		case "right", "l", " ":
			row.field = (row.field + 1) % len(models.FilterFields)
		}
	case colOp:
		switch keyMsg.String() {
		case "left", "h":
			row.op = (row.op + len(query.Operators) - 1) % len(query.Operators)
		case "right", "l", " ":
			row.op = (row.op + 1) % len(query.Operators)
		}
	case colValue:
		var cmd tea.Cmd
		row.value, cmd = row.value.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

func (m *FilterModel) setRow(row int) {
	m.blurValue()
	m.row = row
	if m.row < 0 {
		m.row = 0
	}
	m.focusValue()
}

func (m *FilterModel) setCol(col int) {
	m.blurValue()
	m.col = col
	m.focusValue()
}

func (m *FilterModel) focusValue() {
	if m.col == colValue && m.row < len(m.rows) {
		m.rows[m.row].value.Focus()
	}
}

func (m *FilterModel) blurValue() {
	if m.row < len(m.rows) {
		m.rows[m.row].value.Blur()
	}
}

// apply builds filters from rows with a non-empty value and re-filters
// the catalog.
func (m *FilterModel) apply() (tea.Model, tea.Cmd) {
	var filters []query.Filter
	for _, row := range m.rows {
		value := strings.TrimSpace(row.value.Value())
		if value == "" {
			continue
		}
		filters = append(filters, query.Filter{
			Field: models.FilterFields[row.field].ID,
			Op:    query.Operators[row.op],
			Value: value,
		})
	}
	m.app.Filters = filters
	m.app.ApplyFilters()
	return m, tea.Batch(
		ChangeScreen(BrowseScreen),
		Toast(fmt.Sprintf("Found %d products", len(m.app.Filtered)), false),
	)
}

func (m *FilterModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters"))
	b.WriteString("\n")

	var form strings.Builder
	for i, row := range m.rows {
		field := models.FilterFields[row.field].Label
		op := string(query.Operators[row.op])

		fieldCell := fmt.Sprintf("[%s]", field)
		opCell := fmt.Sprintf("[%s]", op)
		if i == m.row {
			switch m.col {
			case colField:
				fieldCell = selectedMenuItemStyle.Render(fieldCell)
			case colOp:
				opCell = selectedMenuItemStyle.Render(opCell)
			}
		}

		cursor := "  "
		if i == m.row {
			cursor = "> "
		}
		form.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, fieldCell, opCell, row.value.View()))
	}
	b.WriteString(formStyle.Render(form.String()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("Tab column • ←/→ choose • ↑/↓ row • Ctrl+A add • Ctrl+D delete • Ctrl+R reset • Enter apply • Esc back"))
	return b.String()
}
