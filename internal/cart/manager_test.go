package cart_test

import (
	"testing"

	"clinic-api/internal/cart"
	"clinic-api/internal/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIsIdempotentByName(t *testing.T) {
	store := localstore.NewMemoryStore()
	m := cart.NewManager(store)

	item := cart.Item{Name: "Basic Health Checkup", Price: "99", Features: []string{"CBC", "Lipid Profile"}}
	require.NoError(t, m.Add(item))
	require.NoError(t, m.Add(item))
	require.NoError(t, m.Add(cart.Item{Name: "Basic Health Checkup", Price: "149"}))

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "99", items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)
	assert.InDelta(t, 99.0, m.Total(), 0.001)
}

func TestTotalAndCount(t *testing.T) {
	m := cart.NewManager(localstore.NewMemoryStore())

	require.NoError(t, m.Add(cart.Item{Name: "Basic Health Checkup", Price: "99"}))
	require.NoError(t, m.Add(cart.Item{Name: "Comprehensive Health Package", Price: "249"}))
	require.NoError(t, m.Add(cart.Item{Name: "Consultation", Price: "not-a-number"}))

	assert.Equal(t, 3, m.Count())
	assert.InDelta(t, 348.0, m.Total(), 0.001)
}

func TestRemove(t *testing.T) {
	m := cart.NewManager(localstore.NewMemoryStore())

	require.NoError(t, m.Add(cart.Item{Name: "Basic Health Checkup", Price: "99"}))
	require.NoError(t, m.Add(cart.Item{Name: "Comprehensive Health Package", Price: "249"}))

	require.NoError(t, m.Remove("Basic Health Checkup"))
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Comprehensive Health Package", items[0].Name)

	// Removing something not in the cart leaves it unchanged.
	require.NoError(t, m.Remove("No Such Package"))
	assert.Equal(t, 1, m.Count())
}

func TestCartSurvivesReload(t *testing.T) {
	store := localstore.NewMemoryStore()

	first := cart.NewManager(store)
	require.NoError(t, first.Add(cart.Item{Name: "Basic Health Checkup", Price: "99"}))

	second := cart.NewManager(store)
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Basic Health Checkup", items[0].Name)
}

func TestClearRemovesPersistedState(t *testing.T) {
	store := localstore.NewMemoryStore()
	m := cart.NewManager(store)

	require.NoError(t, m.Add(cart.Item{Name: "Basic Health Checkup", Price: "99"}))
	require.NoError(t, m.Clear())

	assert.Equal(t, 0, m.Count())
	assert.False(t, store.Has("health_packages_cart"))
}

func TestCorruptCartReadsAsEmpty(t *testing.T) {
	store := localstore.NewMemoryStore()
	store.Put("health_packages_cart", []byte("{{{"))

	m := cart.NewManager(store)
	assert.Equal(t, 0, m.Count())

	// The next add overwrites the corrupt blob.
	require.NoError(t, m.Add(cart.Item{Name: "Basic Health Checkup", Price: "99"}))
	fresh := cart.NewManager(store)
	assert.Equal(t, 1, fresh.Count())
}

func TestItemsReturnsCopy(t *testing.T) {
	m := cart.NewManager(localstore.NewMemoryStore())
	require.NoError(t, m.Add(cart.Item{Name: "Basic Health Checkup", Price: "99"}))

	items := m.Items()
	items[0].Name = "mutated"
	assert.Equal(t, "Basic Health Checkup", m.Items()[0].Name)
}
