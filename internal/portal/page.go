package portal

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/dom"
	"github.com/wameed/portal/internal/navbar"
	"github.com/wameed/portal/internal/session"
	"github.com/wameed/portal/internal/ui"
	"github.com/wameed/portal/pkg/kvstore"
	"github.com/wameed/portal/pkg/log"
)

const maxNameLength = 64

func withLogAttrs(r *http.Request, attrs ...slog.Attr) *http.Request {
	return r.WithContext(log.WithAttrs(r.Context(), attrs...))
}

// withClient adds the storage client identifier, when it has one, to the
// request logging attributes.
func withClient(r *http.Request, storage kvstore.Storage) *http.Request {
	identified, ok := storage.(kvstore.Identified)
	if !ok {
		return r
	}

	return withLogAttrs(r, slog.String("client", identified.Client()))
}

func (h *Handler) servePage(view string, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r = withLogAttrs(r, slog.String("view", view))

		storage, err := h.backend.Open(w, r)
		if err != nil {
			slog.ErrorContext(r.Context(), "could not open client storage", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		r = withClient(r, storage)

		data := PageTemplateData{
			HeadTemplateData: ui.HeadTemplateData{
				PageTitle: title,
			},
			SignInURL: h.destinations.SignIn,
			SignUpURL: h.destinations.SignUp,
		}

		h.renderPage(w, r, storage, view, data, http.StatusOK)
	}
}

// renderPage executes view, then renders the navbar into the resulting
// document before writing it out.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, storage kvstore.Storage, view string, data PageTemplateData, status int) {
	ctx := r.Context()

	if sess, err := session.Load(storage); err == nil && sess != nil {
		data.Name = sess.Name
	}

	var buff bytes.Buffer

	if err := h.templates.ExecuteTemplate(&buff, view, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	doc, err := dom.Parse(&buff)
	if err != nil {
		slog.ErrorContext(ctx, "could not parse page", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderer, err := h.newRenderer(w, r, storage, doc, r.URL.Path)
	if err != nil {
		slog.ErrorContext(ctx, "could not create navbar renderer", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := renderer.Render(); err != nil {
		slog.ErrorContext(ctx, "could not render navbar", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := doc.Render(w); err != nil {
		slog.ErrorContext(ctx, "could not write page", log.Error(errors.WithStack(err)))
	}
}

func (h *Handler) newRenderer(w http.ResponseWriter, r *http.Request, storage kvstore.Storage, doc navbar.Document, path string) (*navbar.Renderer, error) {
	location := navbar.LocationFunc(func() string {
		return path
	})

	navigator := navbar.NavigatorFunc(func(href string) {
		http.Redirect(w, r, href, http.StatusSeeOther)
	})

	funcs := append([]navbar.OptionFunc{navbar.WithContext(r.Context())}, h.navbarOptions...)

	renderer, err := navbar.New(storage, doc, location, navigator, funcs...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return renderer, nil
}

// handleSignIn stores the submitted display name as the current user. No
// credential is verified.
func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	r = withLogAttrs(r, slog.String("action", "sign-in"))

	storage, err := h.backend.Open(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not open client storage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r = withClient(r, storage)
	ctx := r.Context()

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" || len([]rune(name)) > maxNameLength {
		view := "sign-in"
		if r.URL.Path == h.destinations.SignUp {
			view = "sign-up"
		}

		data := PageTemplateData{
			HeadTemplateData: ui.HeadTemplateData{
				PageTitle: "تسجيل الدخول",
			},
			SignInURL:    h.destinations.SignIn,
			SignUpURL:    h.destinations.SignUp,
			ErrorMessage: "الرجاء إدخال اسم صالح",
		}

		h.renderPage(w, r, storage, view, data, http.StatusBadRequest)
		return
	}

	if err := session.Save(storage, session.New(name, time.Now().UTC())); err != nil {
		slog.ErrorContext(ctx, "could not store current user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "user signed in", slog.String("name", name))

	http.Redirect(w, r, h.destinations.Home, http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	r = withLogAttrs(r, slog.String("action", "logout"))

	storage, err := h.backend.Open(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not open client storage", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, h.destinations.Home, http.StatusSeeOther)
		return
	}

	r = withClient(r, storage)
	ctx := r.Context()

	renderer, err := h.newRenderer(w, r, storage, nil, h.destinations.Home)
	if err != nil {
		slog.ErrorContext(ctx, "could not create navbar renderer", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, h.destinations.Home, http.StatusSeeOther)
		return
	}

	if err := renderer.Logout(); err != nil {
		slog.ErrorContext(ctx, "could not clear current user", log.Error(errors.WithStack(err)))
	}
}

// serveNavbar writes the bare navbar fragment, highlighted for the page
// given by the 'path' query parameter.
func (h *Handler) serveNavbar(w http.ResponseWriter, r *http.Request) {
	r = withLogAttrs(r, slog.String("view", "navbar"))

	storage, err := h.backend.Open(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not open client storage", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r = withClient(r, storage)
	ctx := r.Context()

	doc, err := dom.ParseString(`<div id="` + navbar.PlaceholderID + `"></div>`)
	if err != nil {
		slog.ErrorContext(ctx, "could not create fragment document", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderer, err := h.newRenderer(w, r, storage, doc, r.URL.Query().Get("path"))
	if err != nil {
		slog.ErrorContext(ctx, "could not create navbar renderer", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := renderer.Render(); err != nil {
		slog.ErrorContext(ctx, "could not render navbar", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	fragment, err := doc.ElementByID(navbar.PlaceholderID).InnerHTML()
	if err != nil {
		slog.ErrorContext(ctx, "could not serialize navbar", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := w.Write([]byte(fragment)); err != nil {
		slog.ErrorContext(ctx, "could not write navbar", log.Error(errors.WithStack(err)))
	}
}
