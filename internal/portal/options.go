package portal

import (
	"html/template"
	"net/http"

	"github.com/wameed/portal/internal/navbar"
)

type Options struct {
	NavbarOptions    []navbar.OptionFunc
	SignInMiddleware func(http.Handler) http.Handler
	Assets           http.Handler
	Templates        *template.Template
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		NavbarOptions: make([]navbar.OptionFunc, 0),
		Templates:     defaultTemplates,
		SignInMiddleware: func(next http.Handler) http.Handler {
			return next
		},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithNavbarOptions(funcs ...navbar.OptionFunc) OptionFunc {
	return func(opts *Options) {
		opts.NavbarOptions = append(opts.NavbarOptions, funcs...)
	}
}

func WithSignInMiddleware(middleware func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.SignInMiddleware = middleware
	}
}

func WithAssets(assets http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Assets = assets
	}
}

func WithTemplates(tmpl *template.Template) OptionFunc {
	return func(opts *Options) {
		opts.Templates = tmpl
	}
}
