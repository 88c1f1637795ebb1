// Package navbar renders the portal navigation bar into a page placeholder,
// chooses between the authenticated and anonymous controls from the stored
// current user, and highlights the link of the current page.
package navbar

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/dom"
	"github.com/wameed/portal/internal/session"
	"github.com/wameed/portal/internal/ui"
	"github.com/wameed/portal/pkg/log"
)

const (
	PlaceholderID = "navbar-container"

	ClassLink     = "nav-link"
	ClassNoActive = "no-active"
	ClassActive   = "active"
)

// Document is the page the navbar is rendered into.
type Document interface {
	ElementByID(id string) *dom.Element
	QueryClass(class string) []*dom.Element
}

// Location gives access to the path of the current page.
type Location interface {
	Pathname() string
}

type LocationFunc func() string

// Pathname implements Location.
func (fn LocationFunc) Pathname() string {
	return fn()
}

// Navigator moves the client to another page.
type Navigator interface {
	Navigate(href string)
}

type NavigatorFunc func(href string)

// Navigate implements Navigator.
func (fn NavigatorFunc) Navigate(href string) {
	fn(href)
}

type Renderer struct {
	ctx       context.Context
	storage   session.Storage
	doc       Document
	location  Location
	navigator Navigator

	session *session.UserSession

	links        []*Link
	destinations Destinations
	brandImage   string
	userIcon     string
	defaultPage  string
	templates    *template.Template
	templateName string
}

// New creates a renderer and reads the current user from storage. Stored
// data that cannot be decoded is treated as no user. doc may be nil when the
// renderer is only used to log out.
func New(storage session.Storage, doc Document, location Location, navigator Navigator, funcs ...OptionFunc) (*Renderer, error) {
	opts := NewOptions(funcs...)

	r := &Renderer{
		ctx:          opts.Context,
		storage:      storage,
		doc:          doc,
		location:     location,
		navigator:    navigator,
		links:        opts.Links,
		destinations: opts.Destinations,
		brandImage:   opts.BrandImage,
		userIcon:     opts.UserIcon,
		defaultPage:  opts.DefaultPage,
		templates:    opts.Templates,
		templateName: opts.TemplateName,
	}

	sess, err := session.Load(storage)
	if err != nil {
		if !errors.Is(err, session.ErrMalformed) {
			return nil, errors.WithStack(err)
		}

		slog.WarnContext(r.ctx, "ignoring malformed stored session", log.Reason(err))
		sess = nil
	}

	r.session = sess

	return r, nil
}

// Session returns the current user, nil when anonymous.
func (r *Renderer) Session() *session.UserSession {
	return r.session
}

func (r *Renderer) Authenticated() bool {
	return r.session != nil
}

// CurrentPage returns the path of the current page, falling back to the
// default page when the location path is empty.
func (r *Renderer) CurrentPage() string {
	page := ""
	if r.location != nil {
		page = r.location.Pathname()
	}

	if page == "" {
		return r.defaultPage
	}

	return page
}

// HTML generates the navbar markup.
func (r *Renderer) HTML() (string, error) {
	data, err := r.templateData()
	if err != nil {
		return "", errors.WithStack(err)
	}

	var buff bytes.Buffer

	if err := r.templates.ExecuteTemplate(&buff, r.templateName, data); err != nil {
		return "", errors.WithStack(err)
	}

	return buff.String(), nil
}

func (r *Renderer) templateData() (ui.NavbarTemplateData, error) {
	data := ui.NavbarTemplateData{
		BrandImage:  r.brandImage,
		UserIcon:    r.userIcon,
		NavbarItems: make([]ui.NavbarItem, 0, len(r.links)),
		Destinations: ui.NavbarDestinations{
			Home:    r.destinations.Home,
			SignIn:  r.destinations.SignIn,
			SignUp:  r.destinations.SignUp,
			Profile: r.destinations.Profile,
			Logout:  r.destinations.Logout,
		},
		Authenticated: r.Authenticated(),
	}

	name := ""
	if r.session != nil {
		name = r.session.Name
		data.Username = r.session.Name
		data.SignedInAt = r.session.SignedInAt
	}

	env := map[string]any{
		"authenticated": data.Authenticated,
		"name":          name,
		"path":          r.CurrentPage(),
	}

	for _, l := range r.links {
		visible, err := l.Visible(env)
		if err != nil {
			return data, errors.WithStack(err)
		}

		if !visible {
			continue
		}

		data.NavbarItems = append(data.NavbarItems, ui.NavbarItem{
			Label:    l.Label,
			URL:      l.Href,
			NoActive: l.NoActive,
		})
	}

	return data, nil
}

// Render replaces the content of the placeholder with the navbar markup then
// highlights the active link. A page without placeholder is left untouched.
func (r *Renderer) Render() error {
	if r.doc == nil {
		return nil
	}

	container := r.doc.ElementByID(PlaceholderID)
	if container == nil {
		slog.DebugContext(r.ctx, "no navbar placeholder in page", slog.String("page", r.CurrentPage()))
		return nil
	}

	markup, err := r.HTML()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := container.SetInnerHTML(markup); err != nil {
		return errors.WithStack(err)
	}

	r.HighlightActiveLink()

	return nil
}

// HighlightActiveLink marks as active the first navigation link whose href
// equals the current page. Links carrying the no-active class are never
// marked.
func (r *Renderer) HighlightActiveLink() {
	if r.doc == nil {
		return
	}

	currentPage := r.CurrentPage()
	marked := false

	for _, link := range r.doc.QueryClass(ClassLink) {
		link.RemoveClass(ClassActive)

		if marked || link.HasClass(ClassNoActive) {
			continue
		}

		if link.Attr("href") == currentPage {
			link.AddClass(ClassActive)
			marked = true
		}
	}
}

// Logout removes the current user from storage and navigates home. The
// navigation happens even when the storage could not be cleared.
func (r *Renderer) Logout() error {
	err := session.Clear(r.storage)

	r.session = nil
	r.navigator.Navigate(r.destinations.Home)

	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
