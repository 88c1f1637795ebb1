// Package testsuite runs a shared set of behaviours against a storage backend.
package testsuite

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/wameed/portal/pkg/kvstore"
)

// client replays the cookies it receives, like a browser would.
type client struct {
	backend kvstore.Backend
	cookies map[string]*http.Cookie
}

func (c *client) do(fn func(storage kvstore.Storage) error) error {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	res := httptest.NewRecorder()

	storage, err := c.backend.Open(res, req)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := fn(storage); err != nil {
		return errors.WithStack(err)
	}

	for _, cookie := range res.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}

	return nil
}

func newClient(backend kvstore.Backend) *client {
	return &client{backend: backend, cookies: map[string]*http.Cookie{}}
}

type backendTestCase struct {
	Name string
	Run  func(backend kvstore.Backend) error
}

var backendTestCases = []backendTestCase{
	{
		Name: "MissingItem",
		Run:  MissingItem,
	},
	{
		Name: "SetGetItem",
		Run:  SetGetItem,
	},
	{
		Name: "OverwriteItem",
		Run:  OverwriteItem,
	},
	{
		Name: "RemoveItem",
		Run:  RemoveItem,
	},
	{
		Name: "IsolatedClients",
		Run:  IsolatedClients,
	},
	{
		Name: "StableClient",
		Run:  StableClient,
	},
}

func TestBackend(t *testing.T, storeType kvstore.Type, opts any) {
	t.Logf("Using storage '%s'", storeType)

	backend, err := kvstore.New(storeType, opts)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for _, tc := range backendTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			if err := tc.Run(backend); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func expectItem(storage kvstore.Storage, key string, expectedValue string, expectedExists bool) error {
	value, exists, err := storage.GetItem(key)
	if err != nil {
		return errors.WithStack(err)
	}

	if exists != expectedExists {
		return errors.Errorf("item '%s': expected exists '%v', got '%v'", key, expectedExists, exists)
	}

	if value != expectedValue {
		return errors.Errorf("item '%s': expected value '%s', got '%s'", key, expectedValue, value)
	}

	return nil
}

func MissingItem(backend kvstore.Backend) error {
	c := newClient(backend)

	return c.do(func(storage kvstore.Storage) error {
		return expectItem(storage, "currentUser", "", false)
	})
}

func SetGetItem(backend kvstore.Backend) error {
	c := newClient(backend)

	if err := c.do(func(storage kvstore.Storage) error {
		return storage.SetItem("currentUser", `{"name":"Sara"}`)
	}); err != nil {
		return errors.WithStack(err)
	}

	return c.do(func(storage kvstore.Storage) error {
		return expectItem(storage, "currentUser", `{"name":"Sara"}`, true)
	})
}

func OverwriteItem(backend kvstore.Backend) error {
	c := newClient(backend)

	for _, name := range []string{"Sara", "Omar"} {
		if err := c.do(func(storage kvstore.Storage) error {
			return storage.SetItem("currentUser", `{"name":"`+name+`"}`)
		}); err != nil {
			return errors.WithStack(err)
		}
	}

	return c.do(func(storage kvstore.Storage) error {
		return expectItem(storage, "currentUser", `{"name":"Omar"}`, true)
	})
}

func RemoveItem(backend kvstore.Backend) error {
	c := newClient(backend)

	if err := c.do(func(storage kvstore.Storage) error {
		return storage.SetItem("currentUser", `{"name":"Sara"}`)
	}); err != nil {
		return errors.WithStack(err)
	}

	if err := c.do(func(storage kvstore.Storage) error {
		if err := storage.RemoveItem("currentUser"); err != nil {
			return errors.WithStack(err)
		}

		// Removing a missing item is not an error
		return storage.RemoveItem("currentUser")
	}); err != nil {
		return errors.WithStack(err)
	}

	return c.do(func(storage kvstore.Storage) error {
		return expectItem(storage, "currentUser", "", false)
	})
}

func IsolatedClients(backend kvstore.Backend) error {
	sara := newClient(backend)
	anonymous := newClient(backend)

	if err := sara.do(func(storage kvstore.Storage) error {
		return storage.SetItem("currentUser", `{"name":"Sara"}`)
	}); err != nil {
		return errors.WithStack(err)
	}

	return anonymous.do(func(storage kvstore.Storage) error {
		return expectItem(storage, "currentUser", "", false)
	})
}

// StableClient checks that identified storages keep the identifier of a
// client across requests and give distinct clients distinct identifiers.
func StableClient(backend kvstore.Backend) error {
	clientID := func(c *client) (string, bool, error) {
		var (
			id         string
			identified bool
		)

		err := c.do(func(storage kvstore.Storage) error {
			i, ok := storage.(kvstore.Identified)
			if ok {
				id = i.Client()
				identified = true
			}

			return nil
		})
		if err != nil {
			return "", false, errors.WithStack(err)
		}

		return id, identified, nil
	}

	first := newClient(backend)

	firstID, identified, err := clientID(first)
	if err != nil {
		return errors.WithStack(err)
	}

	if !identified {
		return nil
	}

	if firstID == "" {
		return errors.New("client id: expected a non empty identifier")
	}

	againID, _, err := clientID(first)
	if err != nil {
		return errors.WithStack(err)
	}

	if againID != firstID {
		return errors.Errorf("client id: expected '%s' on the next request, got '%s'", firstID, againID)
	}

	otherID, _, err := clientID(newClient(backend))
	if err != nil {
		return errors.WithStack(err)
	}

	if otherID == firstID {
		return errors.Errorf("client id: expected distinct clients to get distinct identifiers, got '%s' twice", firstID)
	}

	return nil
}
