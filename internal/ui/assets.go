package ui

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/laher/mergefs"
	"github.com/pkg/errors"
)

//go:embed assets/**
var assetsFs embed.FS

// AssetsHandler serves the static assets under prefix. Files found in
// overrides shadow the embedded ones.
func AssetsHandler(prefix string, overrides ...fs.FS) (http.Handler, error) {
	embedded, err := fs.Sub(assetsFs, "assets")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	merged := mergefs.Merge(append(overrides, embedded)...)

	return http.StripPrefix(prefix, http.FileServerFS(merged)), nil
}
