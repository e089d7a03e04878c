// Package cart is the client-side package selection, persisted across
// visits independently of the session: logging out keeps the cart.
package cart

import (
	"strconv"
	"sync"

	"clinic-api/internal/localstore"
)

// storageKey matches the browser localStorage key the original shell used.
const storageKey = "health_packages_cart"

// Item is one selected health package. Quantity is implicitly 1 per
// distinct package; there is no quantity concept beyond that.
type Item struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features,omitempty"`
	Quantity int      `json:"quantity"`
}

type Manager struct {
	mu    sync.Mutex
	store localstore.Store
	items []Item
}

// NewManager loads the persisted cart once. A corrupt blob reads as an
// empty cart.
func NewManager(store localstore.Store) *Manager {
	m := &Manager{store: store}
	store.Load(storageKey, &m.items)
	return m
}

// Add puts a package in the cart unless one with the same name is already
// there. Idempotent by name, not by full content.
func (m *Manager) Add(item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.items {
		if existing.Name == item.Name {
			return nil
		}
	}
	item.Quantity = 1
	m.items = append(m.items, item)
	return m.store.Save(storageKey, m.items)
}

func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, item := range m.items {
		if item.Name != name {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return m.store.Save(storageKey, m.items)
}

func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	return m.store.Delete(storageKey)
}

func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}

// Total sums item prices. Unparseable prices contribute nothing.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total float64
	for _, item := range m.items {
		if price, err := strconv.ParseFloat(item.Price, 64); err == nil {
			total += price
		}
	}
	return total
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
