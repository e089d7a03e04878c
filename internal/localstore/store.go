// Package localstore is the persistence port for device-local state: the
// session snapshot, the cart, and the admin gate flag. Stored blobs are
// plain JSON with no versioning; a malformed blob reads as absent state so
// startup can never crash on one.
package localstore

// Store is the small port state containers persist through.
type Store interface {
	// Load unmarshals the value under key into into. It returns false when
	// the key is missing or its contents cannot be parsed.
	Load(key string, into interface{}) (bool, error)
	Save(key string, v interface{}) error
	Delete(key string) error
}
