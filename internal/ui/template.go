package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
	"github.com/laher/mergefs"
	"github.com/pkg/errors"
)

//go:embed templates/**
var commonFs embed.FS

var commonFuncs = template.FuncMap{
	"humanizeTime": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}

		return humanize.Time(*t)
	},
}

var templatePatterns = []string{
	"**/views/*.gohtml",
	"**/layouts/*.gohtml",
	"**/partials/*.gohtml",
}

// Templates parses the views, layouts and partials found in filesystems and
// in the common templates. Earlier filesystems take precedence over later
// ones, the common templates come last.
func Templates(funcs template.FuncMap, filesystems ...fs.FS) (*template.Template, error) {
	filesystems = append(filesystems, commonFs)
	merged := mergefs.Merge(filesystems...)

	files, err := templateFiles(filesystems)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tmpl := template.New("").Funcs(sprig.FuncMap()).Funcs(commonFuncs)

	if funcs != nil {
		tmpl = tmpl.Funcs(funcs)
	}

	tmpl, err = tmpl.ParseFS(merged, files...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tmpl, nil
}

// templateFiles globs each filesystem on its own: reading a directory
// through the merged filesystem logs every layer missing it.
func templateFiles(filesystems []fs.FS) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)

	for _, filesystem := range filesystems {
		for _, pattern := range templatePatterns {
			matches, err := fs.Glob(filesystem, pattern)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			for _, m := range matches {
				if _, exists := seen[m]; exists {
					continue
				}

				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
	}

	return files, nil
}

type HeadTemplateData struct {
	PageTitle string
}
