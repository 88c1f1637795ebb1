package kvstore

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/wameed/portal/pkg/log"
)

// CookieOptions configures the signed cookie shared by every backend.
type CookieOptions struct {
	Keys     []string      `mapstructure:"keys"`
	Name     string        `mapstructure:"name"`
	Path     string        `mapstructure:"path"`
	MaxAge   time.Duration `mapstructure:"maxAge"`
	HTTPOnly bool          `mapstructure:"httpOnly"`
	Secure   bool          `mapstructure:"secure"`
}

const DefaultCookieName = "wameed_storage"

// WithDefaults fills the cookie name and path when unset.
func (o CookieOptions) WithDefaults() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}

	if o.Path == "" {
		o.Path = "/"
	}

	return o
}

// NewCookieStore creates a gorilla cookie store from opts, generating a
// random signing key when none is configured.
func NewCookieStore(opts CookieOptions) (*sessions.CookieStore, error) {
	keyPairs := make([][]byte, 0, len(opts.Keys))

	if len(opts.Keys) == 0 {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		keyPairs = append(keyPairs, key)
	} else {
		for _, k := range opts.Keys {
			keyPairs = append(keyPairs, []byte(k))
		}
	}

	store := sessions.NewCookieStore(keyPairs...)

	store.MaxAge(int(opts.MaxAge.Seconds()))
	store.Options.Path = opts.Path
	store.Options.HttpOnly = opts.HTTPOnly
	store.Options.Secure = opts.Secure
	store.Options.SameSite = http.SameSiteLaxMode

	return store, nil
}

// DecodeOptions decodes a raw options map into result with duration
// parsing enabled.
func DecodeOptions(storeType Type, options any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return errors.Wrapf(err, "could not create '%s' storage options decoder", storeType)
	}

	if err := decoder.Decode(options); err != nil {
		return errors.Wrapf(err, "could not parse '%s' storage options", storeType)
	}

	return nil
}

// OpenCookieSession returns the named session of r. A cookie that cannot be
// decoded (rotated keys, tampering) yields a fresh session.
func OpenCookieSession(store sessions.Store, name string, r *http.Request) *sessions.Session {
	sess, err := store.Get(r, name)
	if err != nil {
		slog.DebugContext(r.Context(), "discarding undecodable storage cookie", slog.String("cookie", name), log.Reason(err))
	}

	if sess == nil {
		sess = sessions.NewSession(store, name)
	}

	return sess
}

const clientIDValue = "clientId"

// ClientID returns the identifier of the client issuing r, assigning and
// persisting a new one when the client has none.
func ClientID(store sessions.Store, name string, w http.ResponseWriter, r *http.Request) (string, error) {
	sess := OpenCookieSession(store, name, r)

	if clientID, ok := sess.Values[clientIDValue].(string); ok && clientID != "" {
		return clientID, nil
	}

	clientID := xid.New().String()
	sess.Values[clientIDValue] = clientID

	if err := sess.Save(r, w); err != nil {
		return "", errors.WithStack(err)
	}

	return clientID, nil
}
