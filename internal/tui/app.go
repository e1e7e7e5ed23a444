package tui

import (
	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/customer"
	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/order"
	"github.com/joesqua18-code/holidaybasics/internal/query"
)

// App is the shared session state every screen works against: the loaded
// catalog, the active filters, the order ledger, and the customer session
// when one is active.
type App struct {
	Sources []catalog.Source
	Loader  *catalog.Loader
	Store   order.Store
	BaseURL string

	Source   catalog.Source
	All      []models.Record
	Filtered []models.Record

	Filters    []query.Filter
	SearchTerm string
	SortField  string
	SortDesc   bool
	GroupField string

	Session *customer.Session
	Ledger  *order.Ledger

	ShowPrices bool
	ShowStock  bool
	ShowUPC    bool
}

func NewApp(sources []catalog.Source, loader *catalog.Loader, store order.Store, baseURL string) *App {
	return &App{
		Sources:    sources,
		Loader:     loader,
		Store:      store,
		BaseURL:    baseURL,
		Ledger:     order.NewLedger("", store),
		ShowPrices: true,
		ShowStock:  true,
		ShowUPC:    true,
	}
}

// CustomerMode reports whether a customer session drives this app.
func (a *App) CustomerMode() bool {
	return a.Session != nil
}

// SetCatalog installs a freshly loaded catalog. Outside customer mode the
// order is cleared (ledger restarts empty, saved copy untouched).
func (a *App) SetCatalog(src catalog.Source, records []models.Record) {
	a.Source = src
	a.All = records
	a.Filtered = records
	if !a.CustomerMode() {
		a.Ledger = order.NewLedger("", a.Store)
	}
}

// ActivateCustomer applies the authenticated session to a loaded catalog:
// restrict to allowed styles, apply display settings, and restore any
// saved order for this identity. Returns the restored entry count.
func (a *App) ActivateCustomer(src catalog.Source, records []models.Record) int {
	cfg := a.Session.Config()
	records = a.Session.FilterAllowed(records)
	a.Source = src
	a.All = records
	a.Filtered = records

	a.ShowPrices = cfg.Settings.ShowPrices
	a.ShowStock = cfg.Settings.ShowStock

	a.Ledger = order.NewLedger(cfg.Code, a.Store)
	restored, _ := a.Ledger.Restore(models.StyleSet(records))
	return restored
}

// ApplyFilters recomputes the filtered set from the full catalog.
func (a *App) ApplyFilters() {
	a.Filtered = query.Apply(a.All, a.Filters)
}

// ResetFilters drops filters, search, sort, and grouping.
func (a *App) ResetFilters() {
	a.Filters = nil
	a.SearchTerm = ""
	a.SortField = ""
	a.SortDesc = false
	a.GroupField = ""
	a.Filtered = a.All
}

// Visible applies search and sort on top of the filtered set.
func (a *App) Visible() []models.Record {
	products := query.Search(a.Filtered, a.SearchTerm)
	if a.SortField != "" {
		products = query.Sort(products, a.SortField, a.SortDesc)
	}
	return products
}
