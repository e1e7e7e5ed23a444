package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/customer"
)

type Screen int

const (
	BrowseScreen Screen = iota
	CatalogScreen
	FilterScreen
	PasswordScreen
	LinkScreen
	ExportScreen
)

type Model struct {
	app           *App
	currentScreen Screen

	browseModel   *BrowseModel
	catalogModel  *CatalogModel
	filterModel   *FilterModel
	passwordModel *PasswordModel
	linkModel     *LinkModel
	exportModel   *ExportModel

	initial  catalog.Source
	spinner  spinner.Model
	loading  bool
	toast    string
	toastErr bool
	toastID  int
	quitting bool
	width    int
	height   int
}

// NewModel builds the root model. When the app carries a customer session
// the password gate is shown first and the catalog load waits for a
// successful login.
func NewModel(app *App, initial catalog.Source) Model {
	screen := BrowseScreen
	if app.CustomerMode() {
		screen = PasswordScreen
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = labelStyle
	return Model{
		app:           app,
		currentScreen: screen,
		spinner:       sp,
		browseModel:   NewBrowseModel(app),
		catalogModel:  NewCatalogModel(app),
		filterModel:   NewFilterModel(app),
		passwordModel: NewPasswordModel(app),
		linkModel:     NewLinkModel(app),
		exportModel:   NewExportModel(app),
		initial:       initial,
	}
}

func (m Model) Init() tea.Cmd {
	if m.app.CustomerMode() {
		return m.passwordModel.Init()
	}
	if m.initial.Path != "" {
		return loadCatalog(m.app, m.initial)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browseModel.SetSize(msg.Width, msg.Height)
		m.catalogModel.SetSize(msg.Width, msg.Height)
		m.filterModel.SetSize(msg.Width, msg.Height)
		m.passwordModel.SetSize(msg.Width, msg.Height)
		m.linkModel.SetSize(msg.Width, msg.Height)
		m.exportModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if !m.capturingInput() {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			// The password gate is modal: esc does not get past it.
			if m.currentScreen != BrowseScreen && m.currentScreen != PasswordScreen {
				m.currentScreen = BrowseScreen
				return m, nil
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		if msg.Screen == BrowseScreen {
			m.browseModel.Refresh()
		}
		return m, nil

	case LoginMsg:
		m.currentScreen = BrowseScreen
		return m, loadCatalog(m.app, msg.Source)

	case catalogLoadingMsg:
		m.loading = true
		return m, m.spinner.Tick

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case ToastMsg:
		m.toast = msg.Text
		m.toastErr = msg.Error
		m.toastID++
		id := m.toastID
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		})

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case BrowseScreen:
		newModel, cmd := m.browseModel.Update(msg)
		m.browseModel = newModel.(*BrowseModel)
		return m, cmd
	case CatalogScreen:
		newModel, cmd := m.catalogModel.Update(msg)
		m.catalogModel = newModel.(*CatalogModel)
		return m, cmd
	case FilterScreen:
		newModel, cmd := m.filterModel.Update(msg)
		m.filterModel = newModel.(*FilterModel)
		return m, cmd
	case PasswordScreen:
		newModel, cmd := m.passwordModel.Update(msg)
		m.passwordModel = newModel.(*PasswordModel)
		return m, cmd
	case LinkScreen:
		newModel, cmd := m.linkModel.Update(msg)
		m.linkModel = newModel.(*LinkModel)
		return m, cmd
	case ExportScreen:
		newModel, cmd := m.exportModel.Update(msg)
		m.exportModel = newModel.(*ExportModel)
		return m, cmd
	}

	return m, cmd
}

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	res := msg.res
	// A newer request supersedes this one: last request wins, and the
	// spinner keeps going for it.
	if m.app.Loader.Stale(res.Seq) {
		return m, nil
	}
	m.loading = false
	if res.Err != nil {
		// Prior catalog state stays untouched.
		return m, Toast("Error loading data", true)
	}

	if m.app.CustomerMode() && m.app.Session.State() == customer.StateAuthenticated {
		restored := m.app.ActivateCustomer(res.Source, res.Records)
		m.browseModel.Refresh()
		cfg := m.app.Session.Config()
		cmds := []tea.Cmd{Toast(fmt.Sprintf("Welcome %s! %d products available.", cfg.Name, len(m.app.All)), false)}
		if restored > 0 {
			cmds = append(cmds, Toast("Previous order restored", false))
		}
		return m, tea.Sequence(cmds...)
	}

	m.app.SetCatalog(res.Source, res.Records)
	m.browseModel.Refresh()
	return m, Toast(fmt.Sprintf("Loaded %d products from %s", len(res.Records), res.Source.Label), false)
}

// capturingInput reports whether the active screen owns the keyboard for
// text entry, so global shortcuts must stand down.
func (m Model) capturingInput() bool {
	switch m.currentScreen {
	case PasswordScreen, LinkScreen, ExportScreen, FilterScreen:
		return true
	case BrowseScreen:
		return m.browseModel.capturingInput()
	}
	return false
}

func (m Model) View() string {
	if m.quitting {
		return "Thanks for using Holiday Basics! \n"
	}

	var content string
	switch m.currentScreen {
	case BrowseScreen:
		content = m.browseModel.View()
	case CatalogScreen:
		content = m.catalogModel.View()
	case FilterScreen:
		content = m.filterModel.View()
	case PasswordScreen:
		content = m.passwordModel.View()
	case LinkScreen:
		content = m.linkModel.View()
	case ExportScreen:
		content = m.exportModel.View()
	}

	if m.loading {
		content += "\n" + m.spinner.View() + "Loading catalog..."
	}
	if m.toast != "" {
		style := successStyle
		if m.toastErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.toast)
	}

	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

// LoginMsg is emitted by the password gate on a successful login; the
// root model then loads the customer's catalog.
type LoginMsg struct {
	Source catalog.Source
}

type ToastMsg struct {
	Text  string
	Error bool
}

type toastExpiredMsg struct {
	id int
}

type catalogLoadingMsg struct{}

type catalogLoadedMsg struct {
	res catalog.Result
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

// Toast schedules a transient status message.
func Toast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Error: isErr}
	}
}

// loadCatalog starts a sequenced load; stale completions are discarded in
// handleCatalogLoaded.
func loadCatalog(app *App, src catalog.Source) tea.Cmd {
	_, run := app.Loader.Begin(src)
	return tea.Batch(
		func() tea.Msg { return catalogLoadingMsg{} },
		func() tea.Msg { return catalogLoadedMsg{res: run()} },
	)
}
