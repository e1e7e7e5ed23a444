package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/query"
)

// browseRow is one display line: a product, optionally preceded by the
// group divider it opens.
type browseRow struct {
	divider string
	record  models.Record
}

type BrowseModel struct {
	app    *App
	rows   []browseRow
	cursor int
	offset int

	searchInput textinput.Model
	searching   bool

	qtyInput textinput.Model
	editing  bool

	width  int
	height int
}

// sortCycle is the order the sort/group keys step through; "" means off.
var sortCycle = []string{
	"",
	models.FieldStyle,
	models.FieldDesc,
	models.FieldCategory,
	models.FieldBrand,
	models.FieldPriceCase,
	models.FieldQOH,
}

var groupCycle = []string{
	"",
	models.FieldCategory,
	models.FieldBrand,
	models.FieldVendorID,
}

func NewBrowseModel(app *App) *BrowseModel {
	search := textinput.New()
	search.Placeholder = "search style, description, UPC"
	search.CharLimit = 64

	qty := textinput.New()
	qty.CharLimit = 5
	qty.Width = 5

	return &BrowseModel{
		app:         app,
		searchInput: search,
		qtyInput:    qty,
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

func (m *BrowseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BrowseModel) capturingInput() bool {
	return m.searching || m.editing
}

// Refresh rebuilds the display rows from the app state.
func (m *BrowseModel) Refresh() {
	products := m.app.Visible()
	m.rows = m.rows[:0]

	if m.app.GroupField != "" {
		groups := query.Group(products, m.app.GroupField)
		for _, key := range query.GroupKeys(groups) {
			divider := fmt.Sprintf("%s (%d)", key, len(groups[key]))
			for i, r := range groups[key] {
				row := browseRow{record: r}
				if i == 0 {
					row.divider = divider
				}
				m.rows = append(m.rows, row)
			}
		}
	} else {
		for _, r := range products {
			m.rows = append(m.rows, browseRow{record: r})
		}
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		return m.updateSearch(keyMsg)
	}
	if m.editing {
		return m.updateQtyEdit(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "pgup":
		m.cursor -= m.pageSize()
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "pgdown":
		m.cursor += m.pageSize()
		if m.cursor > len(m.rows)-1 {
			m.cursor = len(m.rows) - 1
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.rows) - 1

	case "+", "=":
		if r, ok := m.current(); ok {
			m.app.Ledger.Adjust(r.Style(), 1)
		}
	case "-", "_":
		if r, ok := m.current(); ok {
			m.app.Ledger.Adjust(r.Style(), -1)
		}
	case "e", "enter":
		if r, ok := m.current(); ok {
			m.editing = true
			m.qtyInput.SetValue(strconv.Itoa(m.app.Ledger.Quantity(r.Style())))
			m.qtyInput.Focus()
			return m, textinput.Blink
		}

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.app.SearchTerm)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "s":
		m.app.SortField = cycle(sortCycle, m.app.SortField)
		m.Refresh()
	case "d":
		m.app.SortDesc = !m.app.SortDesc
		m.Refresh()
	case "g":
		m.app.GroupField = cycle(groupCycle, m.app.GroupField)
		m.Refresh()

	case "p":
		if !m.app.CustomerMode() || m.app.Session.Config().Settings.ShowPrices {
			m.app.ShowPrices = !m.app.ShowPrices
		}
	case "u":
		m.app.ShowUPC = !m.app.ShowUPC
	case "h":
		if !m.app.CustomerMode() || m.app.Session.Config().Settings.ShowStock {
			m.app.ShowStock = !m.app.ShowStock
		}

	case "f":
		return m, ChangeScreen(FilterScreen)
	case "c":
		if !m.app.CustomerMode() {
			return m, ChangeScreen(CatalogScreen)
		}
	case "l":
		if !m.app.CustomerMode() {
			return m, ChangeScreen(LinkScreen)
		}
	case "x":
		return m, ChangeScreen(ExportScreen)

	case "r":
		if !m.app.CustomerMode() {
			m.app.ResetFilters()
			m.Refresh()
			return m, Toast(fmt.Sprintf("Found %d products", len(m.app.Filtered)), false)
		}
	case "C":
		m.app.Ledger.Clear()
		return m, Toast("Order cleared", false)
	}

	return m, nil
}

func (m *BrowseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.app.SearchTerm = m.searchInput.Value()
	m.Refresh()
	return m, cmd
}

func (m *BrowseModel) updateQtyEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.qtyInput.Blur()
		if r, ok := m.current(); ok {
			// Invalid input coerces to zero, which removes the entry.
			value, err := strconv.Atoi(strings.TrimSpace(m.qtyInput.Value()))
			if err != nil {
				value = 0
			}
			m.app.Ledger.Set(r.Style(), value)
		}
		return m, nil
	case "esc":
		m.editing = false
		m.qtyInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.qtyInput, cmd = m.qtyInput.Update(msg)
	return m, cmd
}

func (m *BrowseModel) current() (models.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil, false
	}
	return m.rows[m.cursor].record, true
}

func (m *BrowseModel) pageSize() int {
	size := m.height - 9
	if size < 4 {
		size = 4
	}
	return size
}

func (m *BrowseModel) View() string {
	var b strings.Builder

	label := m.app.Source.Label
	if m.app.CustomerMode() {
		label = m.app.Session.Config().Name
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Holiday Basics — %s — %d products", label, len(m.rows))))
	b.WriteString("\n")

	if items, cases := m.app.Ledger.Summary(); items > 0 {
		b.WriteString(summaryStyle.Render(fmt.Sprintf(" Order: %d items / %d cases ", items, cases)))
		b.WriteString("\n")
	}
	if m.searching || m.app.SearchTerm != "" {
		b.WriteString(labelStyle.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("No Products Found"))
		b.WriteString("\n")
	} else {
		m.viewRows(&b)
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *BrowseModel) viewRows(b *strings.Builder) {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}

	end := m.offset + page
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		if row.divider != "" {
			b.WriteString(groupStyle.Render(row.divider))
			b.WriteString("\n")
		}
		b.WriteString(m.renderProduct(row.record, i == m.cursor))
		b.WriteString("\n")
	}
}

func (m *BrowseModel) renderProduct(r models.Record, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%-12s %s", cursor, r.Style(), pad(r.Desc(), 36))
	if m.app.ShowUPC && r.Get(models.FieldUPC) != "" {
		line += "  UPC " + strings.ReplaceAll(r.Get(models.FieldUPC), "'", "")
	}
	if m.app.ShowStock {
		qoh := r.Get(models.FieldQOH)
		if qoh == "" {
			qoh = "0"
		}
		line += "  stock " + qoh
	}
	if m.app.ShowPrices && r.Get(models.FieldPriceCase) != "" {
		line += "  $" + query.FormatPrice(r.Get(models.FieldPriceCase))
	}

	qty := m.app.Ledger.Quantity(r.Style())
	switch {
	case selected && m.editing:
		line += "  qty " + m.qtyInput.View()
	case qty > 0:
		line += qtyStyle.Render(fmt.Sprintf("  qty %d", qty))
	}

	if selected {
		return selectedMenuItemStyle.Render(line)
	}
	return menuItemStyle.Render(line)
}

func (m *BrowseModel) statusLine() string {
	parts := []string{fmt.Sprintf("filters %d", len(m.app.Filters))}
	if m.app.SortField != "" {
		dir := "asc"
		if m.app.SortDesc {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", m.app.SortField, dir))
	}
	if m.app.GroupField != "" {
		parts = append(parts, "group "+m.app.GroupField)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

func (m *BrowseModel) helpLine() string {
	help := "↑/↓ move • +/- qty • e edit qty • / search • f filters • s sort • d direction • g group • x export • C clear order"
	if !m.app.CustomerMode() {
		help += " • c catalogs • l customer link • r reset"
	}
	return help + " • q quit"
}

// cycle steps value to its successor in values, wrapping around.
func cycle(values []string, value string) string {
	for i, v := range values {
		if v == value {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// pad fits s into a fixed display-width column, truncating on rune
// boundaries so multi-byte and wide characters keep the columns aligned.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
