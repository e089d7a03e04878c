package session

import (
	"time"

	"clinic-api/internal/localstore"
)

// Storage keys mirror the original shell's localStorage names.
const (
	adminAuthKey = "admin_authenticated"
	adminUserKey = "admin_username"
	adminTimeKey = "admin_login_time"
)

// AdminGate guards the back-office views with a shared-secret pair and a
// persisted boolean flag. It is NOT a security boundary: the admin data
// routes accept requests regardless, and anyone with store credentials
// bypasses the gate entirely.
type AdminGate struct {
	store    localstore.Store
	username string
	password string
}

func NewAdminGate(store localstore.Store, username, password string) *AdminGate {
	return &AdminGate{store: store, username: username, password: password}
}

// Login checks the pair and, on match, persists the authenticated flag with
// the username and login time.
func (g *AdminGate) Login(username, password string) bool {
	if username != g.username || password != g.password {
		return false
	}
	g.store.Save(adminAuthKey, true)
	g.store.Save(adminUserKey, username)
	g.store.Save(adminTimeKey, time.Now().UTC().Format(time.RFC3339))
	return true
}

func (g *AdminGate) IsAuthenticated() bool {
	var authenticated bool
	ok, _ := g.store.Load(adminAuthKey, &authenticated)
	return ok && authenticated
}

func (g *AdminGate) Username() string {
	var username string
	g.store.Load(adminUserKey, &username)
	return username
}

func (g *AdminGate) Logout() {
	g.store.Delete(adminAuthKey)
	g.store.Delete(adminUserKey)
	g.store.Delete(adminTimeKey)
}
