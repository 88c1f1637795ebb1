package portal

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

// Templates parses the page templates, letting overrides shadow the
// embedded files.
func Templates(overrides ...fs.FS) (*template.Template, error) {
	tmpl, err := ui.Templates(nil, append(overrides, templateFs)...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tmpl, nil
}

type PageTemplateData struct {
	ui.HeadTemplateData
	Name         string
	ErrorMessage string
	SignInURL    string
	SignUpURL    string
}
