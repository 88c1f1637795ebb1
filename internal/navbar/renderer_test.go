package navbar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/dom"
	"github.com/wameed/portal/internal/session"
)

const testPage = `<!DOCTYPE html>
<html><body>
<div id="navbar-container"></div>
<main>content</main>
</body></html>`

type navigatorRecorder struct {
	hrefs []string
}

func (n *navigatorRecorder) Navigate(href string) {
	n.hrefs = append(n.hrefs, href)
}

func newTestRenderer(t *testing.T, doc *dom.Document, items map[string]string, path string, funcs ...OptionFunc) (*Renderer, *session.MemoryStorage, *navigatorRecorder) {
	t.Helper()

	storage := session.NewMemoryStorage(items)
	navigator := &navigatorRecorder{}

	renderer, err := New(storage, doc, LocationFunc(func() string { return path }), navigator, funcs...)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return renderer, storage, navigator
}

func parseTestPage(t *testing.T, page string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return doc
}

func activeHrefs(doc *dom.Document) []string {
	hrefs := make([]string, 0)
	for _, l := range doc.QueryClass(ClassActive) {
		hrefs = append(hrefs, l.Attr("href"))
	}

	return hrefs
}

func assertAnonymous(t *testing.T, doc *dom.Document) {
	t.Helper()

	if e, g := 1, len(doc.QueryClass("btn-login")); e != g {
		t.Errorf("len(btn-login): expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(doc.QueryClass("btn-signup")); e != g {
		t.Errorf("len(btn-signup): expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(doc.QueryClass("welcome-text")); e != g {
		t.Errorf("len(welcome-text): expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(doc.QueryClass("btn-logout")); e != g {
		t.Errorf("len(btn-logout): expected '%v', got '%v'", e, g)
	}
}

func assertAuthenticated(t *testing.T, doc *dom.Document, name string) {
	t.Helper()

	welcome := doc.QueryClass("welcome-text")
	if e, g := 1, len(welcome); e != g {
		t.Fatalf("len(welcome-text): expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(welcome[0].Text(), name) {
		t.Errorf("welcome text: expected to contain '%s', got '%s'", name, welcome[0].Text())
	}

	if e, g := 1, len(doc.QueryClass("btn-logout")); e != g {
		t.Errorf("len(btn-logout): expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(doc.QueryClass("btn-login")); e != g {
		t.Errorf("len(btn-login): expected '%v', got '%v'", e, g)
	}

	if e, g := 0, len(doc.QueryClass("btn-signup")); e != g {
		t.Errorf("len(btn-signup): expected '%v', got '%v'", e, g)
	}
}

func TestRenderModes(t *testing.T) {
	type testCase struct {
		Name   string
		Items  map[string]string
		Assert func(t *testing.T, r *Renderer, doc *dom.Document)
	}

	testCases := []testCase{
		{
			Name:  "NoSession",
			Items: nil,
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				if r.Session() != nil {
					t.Errorf("r.Session(): expected nil, got '%v'", r.Session())
				}

				assertAnonymous(t, doc)
			},
		},
		{
			Name:  "Session",
			Items: map[string]string{session.Key: `{"name":"Sara"}`},
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				assertAuthenticated(t, doc, "Sara")

				forms := doc.QueryClass("logout-form")
				if e, g := 1, len(forms); e != g {
					t.Fatalf("len(logout-form): expected '%v', got '%v'", e, g)
				}

				if e, g := "/logout", forms[0].Attr("action"); e != g {
					t.Errorf("logout form action: expected '%v', got '%v'", e, g)
				}

				welcomeLinks := doc.QueryClass("welcome-link")
				if e, g := 1, len(welcomeLinks); e != g {
					t.Fatalf("len(welcome-link): expected '%v', got '%v'", e, g)
				}

				if e, g := "/profile", welcomeLinks[0].Attr("href"); e != g {
					t.Errorf("welcome link href: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Name:  "MalformedSession",
			Items: map[string]string{session.Key: `{"name":`},
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				if r.Session() != nil {
					t.Errorf("r.Session(): expected nil, got '%v'", r.Session())
				}

				assertAnonymous(t, doc)
			},
		},
		{
			Name:  "EmptyObject",
			Items: map[string]string{session.Key: `{}`},
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				if r.Session() == nil {
					t.Errorf("r.Session(): expected a session, got nil")
				}

				assertAuthenticated(t, doc, "")
			},
		},
		{
			Name:  "BlankName",
			Items: map[string]string{session.Key: `{"name":"   "}`},
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				assertAuthenticated(t, doc, "")
			},
		},
		{
			Name:  "UnknownFields",
			Items: map[string]string{session.Key: `{"other":1}`},
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				assertAuthenticated(t, doc, "")
			},
		},
		{
			Name:  "EscapedName",
			Items: map[string]string{session.Key: `{"name":"<script>alert(1)</script>"}`},
			Assert: func(t *testing.T, r *Renderer, doc *dom.Document) {
				assertAuthenticated(t, doc, "<script>alert(1)</script>")

				if strings.Contains(doc.String(), "<script>") {
					t.Errorf("rendered document contains an unescaped script tag")
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			doc := parseTestPage(t, testPage)

			renderer, _, _ := newTestRenderer(t, doc, tc.Items, "/")

			if err := renderer.Render(); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			tc.Assert(t, renderer, doc)
		})
	}
}

func TestRenderLinks(t *testing.T) {
	doc := parseTestPage(t, testPage)

	renderer, _, _ := newTestRenderer(t, doc, nil, "/")

	if err := renderer.Render(); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	hrefs := make([]string, 0)
	for _, l := range doc.QueryClass(ClassLink) {
		hrefs = append(hrefs, l.Attr("href"))
	}

	expected := []string{"/", "/predicted-fires", "/detected-fires", "/#about"}
	if diff := cmp.Diff(expected, hrefs); diff != "" {
		t.Errorf("link hrefs mismatch (-want +got):\n%s", diff)
	}

	if e, g := 1, len(doc.QueryClass(ClassNoActive)); e != g {
		t.Errorf("len(no-active): expected '%v', got '%v'", e, g)
	}

	navs := doc.ElementByID(PlaceholderID).QueryClass("navbar")
	if e, g := 1, len(navs); e != g {
		t.Errorf("len(navbar): expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(doc.String(), `src="/assets/images/wameed-logo-bar.svg"`) {
		t.Errorf("rendered document does not contain the brand image")
	}
}

func TestRenderWithoutPlaceholder(t *testing.T) {
	const page = `<html><body><main>no navbar here</main></body></html>`

	doc := parseTestPage(t, page)
	before := doc.String()

	renderer, _, _ := newTestRenderer(t, doc, map[string]string{session.Key: `{"name":"Sara"}`}, "/")

	if err := renderer.Render(); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := before, doc.String(); e != g {
		t.Errorf("document: expected to be untouched, got '%v'", g)
	}
}

func TestHighlightActiveLink(t *testing.T) {
	type testCase struct {
		Path     string
		Expected []string
	}

	testCases := []testCase{
		{Path: "/", Expected: []string{"/"}},
		{Path: "", Expected: []string{"/"}},
		{Path: "/predicted-fires", Expected: []string{"/predicted-fires"}},
		{Path: "/detected-fires", Expected: []string{"/detected-fires"}},
		{Path: "/#about", Expected: []string{}},
		{Path: "/profile", Expected: []string{}},
		{Path: "/detected-fires/", Expected: []string{}},
		{Path: "/unknown", Expected: []string{}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			doc := parseTestPage(t, testPage)

			renderer, _, _ := newTestRenderer(t, doc, nil, tc.Path)

			if err := renderer.Render(); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if diff := cmp.Diff(tc.Expected, activeHrefs(doc)); diff != "" {
				t.Errorf("active links mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHighlightActiveLinkDuplicates(t *testing.T) {
	doc := parseTestPage(t, testPage)

	links := []*Link{
		{Label: "Home", Href: "/"},
		{Label: "Home again", Href: "/"},
		{Label: "Map", Href: "/map", NoActive: true},
	}

	renderer, _, _ := newTestRenderer(t, doc, nil, "/", WithLinks(links...))

	if err := renderer.Render(); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	active := doc.QueryClass(ClassActive)
	if e, g := 1, len(active); e != g {
		t.Fatalf("len(active): expected '%v', got '%v'", e, g)
	}

	if e, g := "Home", active[0].Text(); e != g {
		t.Errorf("active link: expected '%v', got '%v'", e, g)
	}
}

func TestRerender(t *testing.T) {
	doc := parseTestPage(t, testPage)

	storage := session.NewMemoryStorage(nil)
	location := LocationFunc(func() string { return "/detected-fires" })
	navigator := &navigatorRecorder{}

	render := func() {
		renderer, err := New(storage, doc, location, navigator)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if err := renderer.Render(); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	render()
	assertAnonymous(t, doc)

	if err := storage.SetItem(session.Key, `{"name":"Sara"}`); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	render()
	assertAuthenticated(t, doc, "Sara")

	if err := storage.RemoveItem(session.Key); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	render()
	assertAnonymous(t, doc)

	if e, g := 1, len(doc.QueryClass("navbar")); e != g {
		t.Errorf("len(navbar): expected '%v', got '%v'", e, g)
	}

	if diff := cmp.Diff([]string{"/detected-fires"}, activeHrefs(doc)); diff != "" {
		t.Errorf("active links mismatch (-want +got):\n%s", diff)
	}
}

func TestLogout(t *testing.T) {
	type testCase struct {
		Name  string
		Items map[string]string
	}

	testCases := []testCase{
		{Name: "Authenticated", Items: map[string]string{session.Key: `{"name":"Sara"}`}},
		{Name: "Anonymous", Items: nil},
		{Name: "Malformed", Items: map[string]string{session.Key: `garbage`}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			doc := parseTestPage(t, testPage)

			renderer, storage, navigator := newTestRenderer(t, doc, tc.Items, "/predicted-fires")

			if err := renderer.Logout(); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if _, exists, _ := storage.GetItem(session.Key); exists {
				t.Errorf("storage: expected '%s' to be removed", session.Key)
			}

			if diff := cmp.Diff([]string{"/"}, navigator.hrefs); diff != "" {
				t.Errorf("navigations mismatch (-want +got):\n%s", diff)
			}

			if renderer.Authenticated() {
				t.Errorf("renderer.Authenticated(): expected false after logout")
			}
		})
	}
}

func TestLinkRules(t *testing.T) {
	links := []*Link{
		{Label: "Home", Href: "/"},
		{Label: "Profile", Href: "/profile", When: "authenticated"},
		{Label: "Join", Href: "/sign-up", When: "!authenticated && path != '/sign-up'"},
	}

	type testCase struct {
		Items    map[string]string
		Path     string
		Expected []string
	}

	testCases := []testCase{
		{Items: nil, Path: "/", Expected: []string{"/", "/sign-up"}},
		{Items: nil, Path: "/sign-up", Expected: []string{"/"}},
		{Items: map[string]string{session.Key: `{"name":"Sara"}`}, Path: "/", Expected: []string{"/", "/profile"}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			doc := parseTestPage(t, testPage)

			renderer, _, _ := newTestRenderer(t, doc, tc.Items, tc.Path, WithLinks(links...))

			if err := renderer.Render(); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			hrefs := make([]string, 0)
			for _, l := range doc.QueryClass(ClassLink) {
				hrefs = append(hrefs, l.Attr("href"))
			}

			if diff := cmp.Diff(tc.Expected, hrefs); diff != "" {
				t.Errorf("link hrefs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvalidLinkRule(t *testing.T) {
	doc := parseTestPage(t, testPage)

	renderer, _, _ := newTestRenderer(t, doc, nil, "/", WithLinks(&Link{Label: "Broken", Href: "/", When: "authenticated +"}))

	if err := renderer.Render(); err == nil {
		t.Errorf("Render(): expected an error for an invalid rule")
	}
}
