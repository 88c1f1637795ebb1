// Package kvstore provides per-client key-value storages, the server side
// counterpart of the browser local storage.
package kvstore

import (
	"net/http"
)

// Storage holds the serialized values of one client.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key string, value string) error
	RemoveItem(key string) error
}

// Backend opens the storage of the client issuing r. Writes may emit
// headers on w and must happen before the response body is written.
type Backend interface {
	Open(w http.ResponseWriter, r *http.Request) (Storage, error)
}

type BackendFunc func(w http.ResponseWriter, r *http.Request) (Storage, error)

// Open implements Backend.
func (fn BackendFunc) Open(w http.ResponseWriter, r *http.Request) (Storage, error) {
	return fn(w, r)
}

// Identified is implemented by storages indexed by a client identifier.
type Identified interface {
	Client() string
}
