package navbar

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/ui"
)

//go:embed templates/**
var templateFs embed.FS

var defaultTemplates *template.Template

func init() {
	tmpl, err := Templates()
	if err != nil {
		panic(errors.WithStack(err))
	}

	defaultTemplates = tmpl
}

// Templates parses the navbar template, letting overrides shadow the
// embedded files.
func Templates(overrides ...fs.FS) (*template.Template, error) {
	filesystems := append(overrides, templateFs)

	tmpl, err := ui.Templates(nil, filesystems...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tmpl, nil
}
