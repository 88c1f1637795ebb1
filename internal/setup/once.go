package setup

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/config"
)

type createFromConfigFunc[T any] func(ctx context.Context, conf *config.Config) (T, error)

// createFromConfigOnce memoizes the first result of factory.
func createFromConfigOnce[T any](factory createFromConfigFunc[T]) createFromConfigFunc[T] {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = factory(ctx, conf)
		})
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		return value, nil
	}
}
