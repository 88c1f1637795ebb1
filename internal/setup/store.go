package setup

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/config"
	"github.com/wameed/portal/pkg/kvstore"

	_ "github.com/wameed/portal/pkg/kvstore/all"
)

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

var NewStorageBackendFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (kvstore.Backend, error) {
	options := map[string]any{}
	if conf.Store.Options != nil {
		maps.Copy(options, conf.Store.Options.Data)
	}

	cookie := conf.HTTP.Session.Cookie

	maxAge := time.Duration(0)
	if cookie.MaxAge != nil {
		maxAge = time.Duration(*cookie.MaxAge)
	}

	options["cookie"] = map[string]any{
		"keys":     []string(conf.HTTP.Session.Keys),
		"name":     string(cookie.Name),
		"path":     string(cookie.Path),
		"maxAge":   maxAge,
		"httpOnly": bool(cookie.HTTPOnly),
		"secure":   bool(cookie.Secure),
	}

	storeType := kvstore.Type(conf.Store.Type)

	backend, err := kvstore.New(storeType, options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if checker, ok := backend.(healthChecker); ok {
		if err := checker.HealthCheck(ctx); err != nil {
			return nil, errors.Wrapf(err, "'%s' storage is not healthy", storeType)
		}
	}

	slog.DebugContext(ctx, "client storage ready", slog.String("type", string(storeType)))

	return backend, nil
})
