package setup

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/config"
	"github.com/wameed/portal/internal/portal"
	"github.com/wameed/portal/internal/ratelimit"
	"github.com/wameed/portal/internal/ui"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	backend, err := NewStorageBackendFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	overrides := make([]fs.FS, 0)
	if themeDir := string(conf.UI.ThemeDir); themeDir != "" {
		slog.InfoContext(ctx, "using theme directory", slog.String("dir", themeDir))
		overrides = append(overrides, os.DirFS(themeDir))
	}

	navbarOptions, err := NewNavbarOptionsFromConfig(ctx, conf, overrides...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pageTemplates, err := portal.Templates(overrides...)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse page templates")
	}

	assetOverrides := make([]fs.FS, 0, len(overrides))
	for _, o := range overrides {
		sub, err := fs.Sub(o, "assets")
		if err != nil {
			return nil, errors.WithStack(err)
		}

		assetOverrides = append(assetOverrides, sub)
	}

	assets, err := ui.AssetsHandler("/assets/", assetOverrides...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rateLimiter := ratelimit.New(rate.Limit(conf.RateLimit.Rate), int(conf.RateLimit.Burst))

	portalHandler := portal.NewHandler(
		backend,
		portal.WithNavbarOptions(navbarOptions...),
		portal.WithTemplates(pageTemplates),
		portal.WithAssets(assets),
		portal.WithSignInMiddleware(rateLimiter.Middleware(ratelimit.RemoteAddr)),
	)

	mux.Handle("/", slogMiddleware(portalHandler))

	return mux, nil
}
