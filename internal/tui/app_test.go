package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joesqua18-code/holidaybasics/internal/catalog"
	"github.com/joesqua18-code/holidaybasics/internal/customer"
	"github.com/joesqua18-code/holidaybasics/internal/models"
	"github.com/joesqua18-code/holidaybasics/internal/query"
)

type memStore struct {
	saved map[string]map[string]int
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string]map[string]int)}
}

func (s *memStore) Save(key string, items map[string]int) error {
	copied := make(map[string]int, len(items))
	for k, v := range items {
		copied[k] = v
	}
	s.saved[key] = copied
	return nil
}

func (s *memStore) Load(key string) (map[string]int, error) { return s.saved[key], nil }
func (s *memStore) Delete(key string) error                 { delete(s.saved, key); return nil }

func testRecords() []models.Record {
	return []models.Record{
		{"STYLE": "A1", "DESC": "Red Wreath", "CATEGORY": "Wreaths", "PRICE_CS": "10"},
		{"STYLE": "B2", "DESC": "Gold Star", "CATEGORY": "Ornaments", "PRICE_CS": "25"},
		{"STYLE": "C3", "DESC": "Blue Light", "CATEGORY": "Lights", "PRICE_CS": "5"},
	}
}

func newTestApp(store *memStore) *App {
	return NewApp(nil, catalog.NewLoader(), store, "https://example.com/order.html")
}

func TestAppSetCatalog(t *testing.T) {
	app := newTestApp(newMemStore())
	app.Ledger.Set("A1", 3)

	app.SetCatalog(catalog.Source{ID: "main"}, testRecords())

	assert.Len(t, app.Filtered, 3)
	// Switching catalogs starts a fresh order.
	assert.Zero(t, app.Ledger.Len())
}

func TestAppFiltersAndVisible(t *testing.T) {
	app := newTestApp(newMemStore())
	app.SetCatalog(catalog.Source{ID: "main"}, testRecords())

	app.Filters = []query.Filter{{Field: "PRICE_CS", Op: query.OpGT, Value: "7"}}
	app.ApplyFilters()
	assert.Len(t, app.Filtered, 2)

	app.SearchTerm = "star"
	visible := app.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "B2", visible[0].Style())

	app.ResetFilters()
	assert.Len(t, app.Filtered, 3)
	assert.Empty(t, app.SearchTerm)
}

func TestAppVisibleSorts(t *testing.T) {
	app := newTestApp(newMemStore())
	app.SetCatalog(catalog.Source{ID: "main"}, testRecords())

	app.SortField = models.FieldPriceCase
	visible := app.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "C3", visible[0].Style())
	assert.Equal(t, "B2", visible[2].Style())
}

func TestAppActivateCustomer(t *testing.T) {
	store := newMemStore()
	store.saved["liberty_order_ACME"] = map[string]int{"A1": 2, "GONE": 5}

	app := newTestApp(store)
	app.Session = customer.NewSession(&customer.Config{
		Code:          "ACME",
		Name:          "Acme Stores",
		Password:      "p",
		Catalog:       "main",
		AllowedStyles: []string{"A1", "B2"},
		Settings:      customer.Settings{ShowPrices: false, ShowStock: true},
	})
	require.True(t, app.Session.Authenticate("p"))

	restored := app.ActivateCustomer(catalog.Source{ID: "main"}, testRecords())

	assert.Len(t, app.All, 2)
	assert.False(t, app.ShowPrices)
	assert.True(t, app.ShowStock)
	assert.Equal(t, 1, restored)
	assert.Equal(t, 2, app.Ledger.Quantity("A1"))
	assert.Zero(t, app.Ledger.Quantity("GONE"))
}

func TestPad(t *testing.T) {
	t.Run("short values fill to the column width", func(t *testing.T) {
		got := pad("A1", 6)
		assert.Equal(t, "A1    ", got)
	})

	t.Run("multi-byte descriptions truncate on rune boundaries", func(t *testing.T) {
		got := pad("Gâteau de Noël décoré", 10)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 10, runewidth.StringWidth(got))
		assert.True(t, strings.HasSuffix(got, "…"))
	})

	t.Run("wide runes keep the column width", func(t *testing.T) {
		got := pad("聖誕花環", 6)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, runewidth.StringWidth(got), 6)
	})
}

func TestCycle(t *testing.T) {
	values := []string{"", "a", "b"}
	assert.Equal(t, "a", cycle(values, ""))
	assert.Equal(t, "b", cycle(values, "a"))
	assert.Equal(t, "", cycle(values, "b"))
	assert.Equal(t, "", cycle(values, "not-present"))
}

func TestLinkModelGenerate(t *testing.T) {
	app := newTestApp(newMemStore())
	app.SetCatalog(catalog.Source{ID: "main"}, testRecords())

	m := NewLinkModel(app)
	m.codeInput.SetValue("acme")
	m.passInput.SetValue("winter24")

	_, cmd := m.generate()
	require.NotNil(t, cmd)
	assert.NotEmpty(t, m.link)
	assert.False(t, m.tooLong)

	token, err := customer.ExtractToken(m.link)
	require.NoError(t, err)
	cfg, err := customer.DecodeLink(token)
	require.NoError(t, err)
	assert.Equal(t, "ACME", cfg.Code)
	assert.Equal(t, "main", cfg.Catalog)
	assert.Equal(t, []string{"A1", "B2", "C3"}, cfg.AllowedStyles)
}

func TestLinkModelCopyUsesClipboard(t *testing.T) {
	app := newTestApp(newMemStore())
	app.SetCatalog(catalog.Source{ID: "main"}, testRecords())

	m := NewLinkModel(app)
	m.link = "https://example.com/order.html?cx=abc"

	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = orig }()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	assert.Equal(t, m.link, copied)
}
