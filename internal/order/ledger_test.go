package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	saved   map[string]map[string]int
	deleted []string
	saves   int
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
	s.saves++
	return nil
}

func (s *memStore) Load(key string) (map[string]int, error) {
	return s.saved[key], nil
}

func (s *memStore) Delete(key string) error {
	delete(s.saved, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func TestKey(t *testing.T) {
	assert.Equal(t, "liberty_order_ACME", Key("ACME"))
	assert.Equal(t, "liberty_order_default", Key(""))
}

func TestLedgerAdjust(t *testing.T) {
	t.Run("clamping below zero removes the entry", func(t *testing.T) {
		l := NewLedger("", newMemStore())
		l.Adjust("A1", 1)
		l.Adjust("A1", 1)
		l.Adjust("A1", -5)
		assert.Zero(t, l.Quantity("A1"))
		assert.Zero(t, l.Len())
	})

	t.Run("zero delta leaves quantity unchanged", func(t *testing.T) {
		l := NewLedger("", newMemStore())
		l.Adjust("A1", 3)
		assert.Equal(t, 3, l.Adjust("A1", 0))
	})

	t.Run("quantities stay positive", func(t *testing.T) {
		l := NewLedger("", newMemStore())
		l.Adjust("A1", 2)
		l.Adjust("B2", -1)
		l.Set("C3", -4)
		for _, qty := range l.Items() {
			assert.Positive(t, qty)
		}
		assert.Equal(t, 1, l.Len())
	})
}

func TestLedgerSet(t *testing.T) {
	t.Run("set to current value is a no-op", func(t *testing.T) {
		store := newMemStore()
		l := NewLedger("", store)
		l.Set("A1", 4)
		l.Set("A1", 4)
		assert.Equal(t, 4, l.Quantity("A1"))
	})

	t.Run("set to zero removes", func(t *testing.T) {
		l := NewLedger("", newMemStore())
		l.Set("A1", 4)
		l.Set("A1", 0)
		assert.Zero(t, l.Len())
	})
}

func TestLedgerSummary(t *testing.T) {
	l := NewLedger("", newMemStore())
	l.Set("A1", 2)
	l.Set("B2", 5)
	items, cases := l.Summary()
	assert.Equal(t, 2, items)
	assert.Equal(t, 7, cases)
}

func TestLedgerPersistence(t *testing.T) {
	t.Run("every mutation writes through", func(t *testing.T) {
		store := newMemStore()
		l := NewLedger("ACME", store)
		l.Adjust("A1", 2)
		assert.Equal(t, map[string]int{"A1": 2}, store.saved["liberty_order_ACME"])
	})

	t.Run("an empty ledger is not written", func(t *testing.T) {
		store := newMemStore()
		l := NewLedger("", store)
		l.Adjust("A1", -1)
		assert.Zero(t, store.saves)
	})

	t.Run("clear erases the persisted copy", func(t *testing.T) {
		store := newMemStore()
		l := NewLedger("ACME", store)
		l.Set("A1", 3)
		l.Clear()
		assert.Zero(t, l.Len())
		assert.NotContains(t, store.saved, "liberty_order_ACME")
		assert.Contains(t, store.deleted, "liberty_order_ACME")
	})
}

func TestLedgerRestore(t *testing.T) {
	t.Run("unknown styles are dropped", func(t *testing.T) {
		store := newMemStore()
		store.saved["liberty_order_ACME"] = map[string]int{"A1": 2, "GONE": 9}

		l := NewLedger("ACME", store)
		restored, err := l.Restore(map[string]bool{"A1": true, "B2": true})
		require.NoError(t, err)
		assert.Equal(t, 1, restored)
		assert.Equal(t, 2, l.Quantity("A1"))
		assert.Zero(t, l.Quantity("GONE"))
	})

	t.Run("nothing saved restores nothing", func(t *testing.T) {
		l := NewLedger("ACME", newMemStore())
		restored, err := l.Restore(map[string]bool{"A1": true})
		require.NoError(t, err)
		assert.Zero(t, restored)
	})

	t.Run("non-positive saved quantities are skipped", func(t *testing.T) {
		store := newMemStore()
		store.saved["liberty_order_default"] = map[string]int{"A1": 0, "B2": -3}

		l := NewLedger("", store)
		restored, err := l.Restore(map[string]bool{"A1": true, "B2": true})
		require.NoError(t, err)
		assert.Zero(t, restored)
	})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save("liberty_order_ACME", map[string]int{"A1": 2}))
		items, err := store.Load("liberty_order_ACME")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"A1": 2}, items)
	})

	t.Run("missing key loads nil without error", func(t *testing.T) {
		items, err := store.Load("liberty_order_NOPE")
		require.NoError(t, err)
		assert.Nil(t, items)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Save("liberty_order_X", map[string]int{"A1": 1}))
		require.NoError(t, store.Delete("liberty_order_X"))
		require.NoError(t, store.Delete("liberty_order_X"))
		items, err := store.Load("liberty_order_X")
		require.NoError(t, err)
		assert.Nil(t, items)
	})
}
