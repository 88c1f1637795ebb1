// Package cookie stores client values directly in a signed cookie.
package cookie

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/wameed/portal/pkg/kvstore"
)

const Type kvstore.Type = "cookie"

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
}

// Open implements kvstore.Backend.
func (b *Backend) Open(w http.ResponseWriter, r *http.Request) (kvstore.Storage, error) {
	return &Storage{
		sess: kvstore.OpenCookieSession(b.store, b.name, r),
		w:    w,
		r:    r,
	}, nil
}

func NewBackend(store sessions.Store, name string) *Backend {
	return &Backend{store: store, name: name}
}

var _ kvstore.Backend = &Backend{}

type Storage struct {
	sess *sessions.Session
	w    http.ResponseWriter
	r    *http.Request
}

// GetItem implements kvstore.Storage.
func (s *Storage) GetItem(key string) (string, bool, error) {
	value, ok := s.sess.Values[key].(string)
	return value, ok, nil
}

// SetItem implements kvstore.Storage.
func (s *Storage) SetItem(key string, value string) error {
	s.sess.Values[key] = value

	if err := s.sess.Save(s.r, s.w); err != nil {
		return errors.Wrapf(err, "could not save item '%s'", key)
	}

	return nil
}

// RemoveItem implements kvstore.Storage.
func (s *Storage) RemoveItem(key string) error {
	delete(s.sess.Values, key)

	if err := s.sess.Save(s.r, s.w); err != nil {
		return errors.Wrapf(err, "could not remove item '%s'", key)
	}

	return nil
}

var _ kvstore.Storage = &Storage{}
