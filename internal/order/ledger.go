package order

import (
	"log"
)

// KeyPrefix namespaces persisted orders; one entry per customer identity.
const KeyPrefix = "liberty_order_"

// DefaultIdentity is used when no customer session is active.
const DefaultIdentity = "default"

// Key derives the persistence key for a customer code.
func Key(code string) string {
	if code == "" {
		code = DefaultIdentity
	}
	return KeyPrefix + code
}

// Store is the durable key-value backing for ledgers.
type Store interface {
	Save(key string, items map[string]int) error
	Load(key string) (map[string]int, error)
	Delete(key string) error
}

// Ledger maps a style identifier to its ordered quantity. Quantities are
// always positive: a mutation that lands at or below zero removes the
// entry. Every mutation is persisted synchronously, best effort: a store
// failure is logged and the in-memory state stands.
type Ledger struct {
	key   string
	items map[string]int
	store Store
}

// NewLedger creates an empty ledger persisted under the given customer
// code ("" means the default identity).
func NewLedger(code string, store Store) *Ledger {
	return &Ledger{
		key:   Key(code),
		items: make(map[string]int),
		store: store,
	}
}

// Adjust adds delta to the quantity for style, clamping at zero. Returns
// the resulting quantity.
func (l *Ledger) Adjust(style string, delta int) int {
	qty := l.items[style] + delta
	if qty < 0 {
		qty = 0
	}
	l.apply(style, qty)
	return qty
}

// Set replaces the quantity for style. Negative values clamp to zero,
// which removes the entry.
func (l *Ledger) Set(style string, value int) int {
	if value < 0 {
		value = 0
	}
	l.apply(style, value)
	return value
}

func (l *Ledger) apply(style string, qty int) {
	if qty > 0 {
		l.items[style] = qty
	} else {
		delete(l.items, style)
	}
	l.persist()
}

// Quantity returns the ordered quantity for style, zero when absent.
func (l *Ledger) Quantity(style string) int {
	return l.items[style]
}

// Len returns the number of distinct ordered styles.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Summary returns the distinct item count and the total quantity across
// all items.
func (l *Ledger) Summary() (items, cases int) {
	for _, qty := range l.items {
		cases += qty
	}
	return len(l.items), cases
}

// Items returns a copy of the ledger contents.
func (l *Ledger) Items() map[string]int {
	out := make(map[string]int, len(l.items))
	for style, qty := range l.items {
		out[style] = qty
	}
	return out
}

// Clear empties the ledger and erases its persisted copy.
func (l *Ledger) Clear() {
	l.items = make(map[string]int)
	if err := l.store.Delete(l.key); err != nil {
		log.Printf("order: failed to erase saved order %s: %v", l.key, err)
	}
}

// Restore loads the saved order for this identity, keeping only styles in
// the allowed set. The catalog may have changed since the order was saved,
// so unknown styles are dropped. Returns the number of restored entries.
func (l *Ledger) Restore(allowed map[string]bool) (int, error) {
	saved, err := l.store.Load(l.key)
	if err != nil {
		return 0, err
	}
	restored := 0
	for style, qty := range saved {
		if qty <= 0 || !allowed[style] {
			continue
		}
		l.items[style] = qty
		restored++
	}
	return restored, nil
}

// persist writes the ledger to the store. An empty ledger is not written;
// it is only erased through Clear.
func (l *Ledger) persist() {
	if len(l.items) == 0 {
		return
	}
	if err := l.store.Save(l.key, l.items); err != nil {
		log.Printf("order: failed to save order %s: %v", l.key, err)
	}
}
