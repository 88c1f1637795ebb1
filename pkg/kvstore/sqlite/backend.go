// Package sqlite persists client values in a SQLite database, indexed by a
// client identifier carried in a signed cookie.
package sqlite

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/wameed/portal/pkg/kvstore"
	"github.com/wameed/portal/pkg/log"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

const Type kvstore.Type = "sqlite"

func init() {
	kvstore.Register(Type, CreateBackendFromOptions)
}

type Options struct {
	Cookie kvstore.CookieOptions `mapstructure:"cookie"`
	Path   string                `mapstructure:"path"`
}

var schema = sqlitemigration.Schema{
	Migrations: []string{
		`CREATE TABLE IF NOT EXISTS items (
			client_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (client_id, key)
		);`,
	},
}

func CreateBackendFromOptions(options any) (kvstore.Backend, error) {
	opts := Options{}

	if err := kvstore.DecodeOptions(Type, options, &opts); err != nil {
		return nil, errors.WithStack(err)
	}

	if opts.Path == "" {
		return nil, errors.Errorf("'%s' storage option 'path' is required", Type)
	}

	cookieOpts := opts.Cookie.WithDefaults()

	store, err := kvstore.NewCookieStore(cookieOpts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewBackend(store, cookieOpts.Name, opts.Path), nil
}

type Backend struct {
	store sessions.Store
	name  string
	pool  *sqlitemigration.Pool
}

// Open implements kvstore.Backend.
func (b *Backend) Open(w http.ResponseWriter, r *http.Request) (kvstore.Storage, error) {
	clientID, err := kvstore.ClientID(b.store, b.name, w, r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Storage{backend: b, ctx: r.Context(), clientID: clientID}, nil
}

func (b *Backend) HealthCheck(ctx context.Context) error {
	conn, err := b.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer b.pool.Put(conn)

	if err := b.pool.CheckHealth(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Backend) Close() error {
	if err := b.pool.Close(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Backend) do(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := b.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer b.pool.Put(conn)

	if err := fn(conn); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewBackend(store sessions.Store, name string, path string) *Backend {
	pool := sqlitemigration.NewPool(path, schema, sqlitemigration.Options{
		Flags: sqlite.OpenCreate | sqlite.OpenReadWrite | sqlite.OpenWAL,
		OnError: func(err error) {
			slog.Error("sqlite storage migration error", log.Error(errors.WithStack(err)))
		},
	})

	return &Backend{
		store: store,
		name:  name,
		pool:  pool,
	}
}

var _ kvstore.Backend = &Backend{}

type Storage struct {
	backend  *Backend
	ctx      context.Context
	clientID string
}

// Client implements kvstore.Identified.
func (s *Storage) Client() string {
	return s.clientID
}

// GetItem implements kvstore.Storage.
func (s *Storage) GetItem(key string) (string, bool, error) {
	var (
		value  string
		exists bool
	)

	err := s.backend.do(s.ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT value FROM items WHERE client_id = ? AND key = ?`, &sqlitex.ExecOptions{
			Args: []any{s.clientID, key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = stmt.ColumnText(0)
				exists = true
				return nil
			},
		})
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "could not get item '%s'", key)
	}

	return value, exists, nil
}

// SetItem implements kvstore.Storage.
func (s *Storage) SetItem(key string, value string) error {
	err := s.backend.do(s.ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `
			INSERT INTO items (client_id, key, value, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, &sqlitex.ExecOptions{
			Args: []any{s.clientID, key, value, time.Now().UTC().Unix()},
		})
	})
	if err != nil {
		return errors.Wrapf(err, "could not set item '%s'", key)
	}

	return nil
}

// RemoveItem implements kvstore.Storage.
func (s *Storage) RemoveItem(key string) error {
	err := s.backend.do(s.ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM items WHERE client_id = ? AND key = ?`, &sqlitex.ExecOptions{
			Args: []any{s.clientID, key},
		})
	})
	if err != nil {
		return errors.Wrapf(err, "could not remove item '%s'", key)
	}

	return nil
}

var _ kvstore.Storage = &Storage{}
