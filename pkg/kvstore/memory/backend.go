// Package memory keeps client values in process memory, indexed by a client
// identifier carried in a signed cookie. Values are lost on restart.
package memory

import (
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/wameed/portal/pkg/kvstore"
)

const Type kvstore.Type = "memory"

func init() {
	kvstore.Register(Type, CreateBackendFromOptions)
}

type Options struct {
	Cookie kvstore.CookieOptions `mapstructure:"cookie"`
}

func CreateBackendFromOptions(options any) (kvstore.Backend, error) {
	opts := Options{}

	if err := kvstore.DecodeOptions(Type, options, &opts); err != nil {
		return nil, errors.WithStack(err)
	}

	cookieOpts := opts.Cookie.WithDefaults()

	store, err := kvstore.NewCookieStore(cookieOpts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewBackend(store, cookieOpts.Name), nil
}

type Backend struct {
	store sessions.Store
	name  string

	mutex   sync.RWMutex
	clients map[string]map[string]string
}

// Open implements kvstore.Backend.
func (b *Backend) Open(w http.ResponseWriter, r *http.Request) (kvstore.Storage, error) {
	clientID, err := kvstore.ClientID(b.store, b.name, w, r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Storage{backend: b, clientID: clientID}, nil
}

func NewBackend(store sessions.Store, name string) *Backend {
	return &Backend{
		store:   store,
		name:    name,
		clients: make(map[string]map[string]string),
	}
}

var _ kvstore.Backend = &Backend{}

type Storage struct {
	backend  *Backend
	clientID string
}

// Client implements kvstore.Identified.
func (s *Storage) Client() string {
	return s.clientID
}

// GetItem implements kvstore.Storage.
func (s *Storage) GetItem(key string) (string, bool, error) {
	s.backend.mutex.RLock()
	defer s.backend.mutex.RUnlock()

	value, exists := s.backend.clients[s.clientID][key]

	return value, exists, nil
}

// SetItem implements kvstore.Storage.
func (s *Storage) SetItem(key string, value string) error {
	s.backend.mutex.Lock()
	defer s.backend.mutex.Unlock()

	items, exists := s.backend.clients[s.clientID]
	if !exists {
		items = make(map[string]string)
		s.backend.clients[s.clientID] = items
	}

	items[key] = value

	return nil
}

// RemoveItem implements kvstore.Storage.
func (s *Storage) RemoveItem(key string) error {
	s.backend.mutex.Lock()
	defer s.backend.mutex.Unlock()

	items, exists := s.backend.clients[s.clientID]
	if !exists {
		return nil
	}

	delete(items, key)

	if len(items) == 0 {
		delete(s.backend.clients, s.clientID)
	}

	return nil
}

var _ kvstore.Storage = &Storage{}
