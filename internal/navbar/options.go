package navbar

import (
	"context"
	"html/template"
)

type Options struct {
	Context      context.Context
	Links        []*Link
	Destinations Destinations
	BrandImage   string
	UserIcon     string
	DefaultPage  string
	Templates    *template.Template
	TemplateName string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	destinations := DefaultDestinations()

	opts := &Options{
		Context:      context.Background(),
		Links:        DefaultLinks(),
		Destinations: destinations,
		BrandImage:   "/assets/images/wameed-logo-bar.svg",
		UserIcon:     "/assets/images/user-icon.svg",
		DefaultPage:  destinations.Home,
		Templates:    defaultTemplates,
		TemplateName: "navbar",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithContext(ctx context.Context) OptionFunc {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

func WithLinks(links ...*Link) OptionFunc {
	return func(opts *Options) {
		opts.Links = links
	}
}

// WithDestinations also resets the default page to the home destination.
func WithDestinations(destinations Destinations) OptionFunc {
	return func(opts *Options) {
		opts.Destinations = destinations
		opts.DefaultPage = destinations.Home
	}
}

func WithBrandImage(url string) OptionFunc {
	return func(opts *Options) {
		opts.BrandImage = url
	}
}

func WithUserIcon(url string) OptionFunc {
	return func(opts *Options) {
		opts.UserIcon = url
	}
}

func WithTemplates(tmpl *template.Template) OptionFunc {
	return func(opts *Options) {
		opts.Templates = tmpl
	}
}
