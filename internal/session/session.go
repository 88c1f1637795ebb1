package session

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Key identifies the current user entry in the client storage.
const Key = "currentUser"

var ErrMalformed = errors.New("malformed session")

// Storage is a per-client key-value store holding serialized text values.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key string, value string) error
	RemoveItem(key string) error
}

// UserSession is the signed-in user record. Its presence is the only state
// that affects navbar rendering.
type UserSession struct {
	Name       string     `json:"name"`
	SignedInAt *time.Time `json:"signedInAt,omitempty"`
}

func New(name string, signedInAt time.Time) *UserSession {
	return &UserSession{
		Name:       name,
		SignedInAt: &signedInAt,
	}
}

// Decode parses raw. The returned error wraps ErrMalformed when raw is not a
// JSON object. Unknown or missing fields are accepted.
func Decode(raw string) (*UserSession, error) {
	var sess *UserSession

	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "could not decode session: %s", err.Error())
	}

	if sess == nil {
		return nil, errors.Wrap(ErrMalformed, "session is null")
	}

	return sess, nil
}

func Encode(sess *UserSession) (string, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(data), nil
}

// Load reads the current user from storage. It returns (nil, nil) when no
// entry exists.
func Load(storage Storage) (*UserSession, error) {
	raw, exists, err := storage.GetItem(Key)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !exists {
		return nil, nil
	}

	sess, err := Decode(raw)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return sess, nil
}

func Save(storage Storage, sess *UserSession) error {
	raw, err := Encode(sess)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := storage.SetItem(Key, raw); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func Clear(storage Storage) error {
	if err := storage.RemoveItem(Key); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
