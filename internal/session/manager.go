// Package session holds the client-side "current user" state the web shell
// keeps between visits. The snapshot is advisory display state: the server
// never treats it as proof of identity, there is no expiry or revocation,
// and logout is the only way to invalidate it.
package session

import (
	"sync"

	"clinic-api/internal/localstore"
)

// snapshotKey matches the browser localStorage key the original shell used.
const snapshotKey = "user_data"

// Snapshot is the persisted projection of an account, as returned by login.
type Snapshot struct {
	UserID string `json:"id"`
	Mobile string `json:"mobile"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// OrdersChecker answers whether at least one booking exists for an account.
type OrdersChecker interface {
	HasOrders(userID string) (bool, error)
}

// Manager is the session state machine: Anonymous, or Authenticated with a
// derived hasOrders flag that gates the Orders and Payment History
// navigation entries.
type Manager struct {
	mu     sync.Mutex
	store  localstore.Store
	orders OrdersChecker

	current   *Snapshot
	hasOrders bool
}

// NewManager restores any persisted snapshot optimistically (no identity
// revalidation round trip) and then runs the orders-existence check. A
// malformed snapshot reads as absent, leaving the manager Anonymous.
func NewManager(store localstore.Store, orders OrdersChecker) *Manager {
	m := &Manager{store: store, orders: orders}

	var snapshot Snapshot
	if ok, _ := store.Load(snapshotKey, &snapshot); ok && snapshot.UserID != "" {
		m.current = &snapshot
		m.hasOrders = m.checkOrders(snapshot.UserID)
	}
	return m
}

// Login replaces the session with the given account snapshot, persists it,
// and refreshes the hasOrders flag.
func (m *Manager) Login(snapshot Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = &snapshot
	if err := m.store.Save(snapshotKey, snapshot); err != nil {
		return err
	}
	m.hasOrders = m.checkOrders(snapshot.UserID)
	return nil
}

// Logout returns to Anonymous and clears the persisted snapshot. The cart
// is a separate container and survives logout.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.hasOrders = false
	return m.store.Delete(snapshotKey)
}

// RefreshOrders re-runs the existence check, flipping navigation visibility
// after a new booking without a full session reload.
func (m *Manager) RefreshOrders() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return
	}
	m.hasOrders = m.checkOrders(m.current.UserID)
}

func (m *Manager) Current() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Snapshot{}, false
	}
	return *m.current, true
}

func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

func (m *Manager) HasOrders() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasOrders
}

// checkOrders treats a failed check as "no orders"; the flag only gates
// navigation, so hiding the entries is the safe degradation.
func (m *Manager) checkOrders(userID string) bool {
	has, err := m.orders.HasOrders(userID)
	if err != nil {
		return false
	}
	return has
}
