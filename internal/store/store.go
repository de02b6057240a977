package store

// Collection names for the snapshot store. Each holds one whole-collection
// JSON blob; writes replace the blob entirely.
const (
	CollectionClients       = "clients"
	CollectionActivities    = "activities"
	CollectionNotifications = "notifications"
	CollectionUsers         = "users"
)

// Store persists whole collections as opaque JSON documents. Partial
// updates are not supported: callers read, modify and write back the
// complete collection.
type Store interface {
	// Load reads the named collection into dst. A collection that has never
	// been written loads as the zero value with no error.
	Load(name string, dst interface{}) error
	// Save replaces the named collection with src.
	Save(name string, src interface{}) error
}
