package session_test

import (
	"testing"

	"clinic-api/internal/localstore"
	"clinic-api/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestAdminGateLogin(t *testing.T) {
	store := localstore.NewMemoryStore()
	gate := session.NewAdminGate(store, "admin", "admin123")

	assert.False(t, gate.IsAuthenticated())

	assert.False(t, gate.Login("admin", "wrong"))
	assert.False(t, gate.Login("someone", "admin123"))
	assert.False(t, gate.IsAuthenticated())

	assert.True(t, gate.Login("admin", "admin123"))
	assert.True(t, gate.IsAuthenticated())
	assert.Equal(t, "admin", gate.Username())
	assert.True(t, store.Has("admin_login_time"))
}

func TestAdminGateLogout(t *testing.T) {
	store := localstore.NewMemoryStore()
	gate := session.NewAdminGate(store, "admin", "admin123")

	assert.True(t, gate.Login("admin", "admin123"))
	gate.Logout()

	assert.False(t, gate.IsAuthenticated())
	assert.Empty(t, gate.Username())
	assert.False(t, store.Has("admin_authenticated"))
	assert.False(t, store.Has("admin_username"))
	assert.False(t, store.Has("admin_login_time"))
}

func TestAdminGatePersistsAcrossRestart(t *testing.T) {
	store := localstore.NewMemoryStore()
	first := session.NewAdminGate(store, "admin", "admin123")
	assert.True(t, first.Login("admin", "admin123"))

	second := session.NewAdminGate(store, "admin", "admin123")
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "admin", second.Username())
}

func TestAdminGateTamperedFlag(t *testing.T) {
	store := localstore.NewMemoryStore()
	store.Put("admin_authenticated", []byte("false"))

	gate := session.NewAdminGate(store, "admin", "admin123")
	assert.False(t, gate.IsAuthenticated())
}
