package portal

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/wameed/portal/internal/navbar"
	"github.com/wameed/portal/pkg/kvstore"
)

type Handler struct {
	mux           *http.ServeMux
	backend       kvstore.Backend
	navbarOptions []navbar.OptionFunc
	destinations  navbar.Destinations
	templates     *template.Template
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(backend kvstore.Backend, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		mux:           http.NewServeMux(),
		backend:       backend,
		navbarOptions: opts.NavbarOptions,
		destinations:  navbar.NewOptions(opts.NavbarOptions...).Destinations,
		templates:     opts.Templates,
	}

	h.mux.HandleFunc("GET /{$}", h.servePage("home", "الصفحة الرئيسية"))
	h.mux.HandleFunc("GET /predicted-fires", h.servePage("predicted-fires", "التنبؤ بالحرائق"))
	h.mux.HandleFunc("GET /detected-fires", h.servePage("detected-fires", "رصد الحرائق"))
	h.mux.HandleFunc("GET /profile", h.servePage("profile", "الملف الشخصي"))
	h.mux.HandleFunc(fmt.Sprintf("GET %s", h.destinations.SignIn), h.servePage("sign-in", "تسجيل الدخول"))
	h.mux.HandleFunc(fmt.Sprintf("GET %s", h.destinations.SignUp), h.servePage("sign-up", "إنشاء حساب"))

	signIn := opts.SignInMiddleware(http.HandlerFunc(h.handleSignIn))
	h.mux.Handle(fmt.Sprintf("POST %s", h.destinations.SignIn), signIn)
	h.mux.Handle(fmt.Sprintf("POST %s", h.destinations.SignUp), signIn)

	h.mux.HandleFunc(fmt.Sprintf("POST %s", h.destinations.Logout), h.handleLogout)

	h.mux.HandleFunc("GET /navbar", h.serveNavbar)

	if opts.Assets != nil {
		h.mux.Handle("GET /assets/", opts.Assets)
	}

	return h
}

var _ http.Handler = &Handler{}
