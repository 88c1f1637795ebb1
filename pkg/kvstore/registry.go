package kvstore

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
)

type Type string

type CreateFunc func(options any) (Backend, error)

var (
	registryMutex sync.RWMutex
	registry      = map[Type]CreateFunc{}
)

var ErrNotRegistered = errors.New("storage type not registered")

func Register(storeType Type, create CreateFunc) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[storeType] = create
}

// Registered returns the available storage types, sorted.
func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(storeType Type, options any) (Backend, error) {
	registryMutex.RLock()
	create, exists := registry[storeType]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "could not create storage '%s'", storeType)
	}

	backend, err := create(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return backend, nil
}
