package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CatalogModel is the catalog picker. Selecting a source while a previous
// load is still in flight simply supersedes it.
type CatalogModel struct {
	app    *App
	cursor int
	width  int
	height int
}

func NewCatalogModel(app *App) *CatalogModel {
	return &CatalogModel{app: app}
}

func (m *CatalogModel) Init() tea.Cmd {
	return nil
}

func (m *CatalogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.app.Sources)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.app.Sources) == 0 {
				return m, nil
			}
			src := m.app.Sources[m.cursor]
			return m, tea.Batch(
				ChangeScreen(BrowseScreen),
				loadCatalog(m.app, src),
			)
		}
	}
	return m, nil
}

func (m *CatalogModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Catalog"))
	b.WriteString("\n\n")

	if len(m.app.Sources) == 0 {
		b.WriteString(helpStyle.Render("No catalogs configured. Check catalogs.json in the data directory."))
		b.WriteString("\n")
	}

	for i, src := range m.app.Sources {
		cursor := " "
		label := fmt.Sprintf("%s (%s)", src.Label, src.ID)
		if m.cursor == i {
			cursor = ">"
			label = selectedMenuItemStyle.Render(label)
		} else {
			label = menuItemStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, label))
	}

	b.WriteString(helpStyle.Render("↑/↓ to navigate • Enter to load • Esc to go back"))
	return b.String()
}
