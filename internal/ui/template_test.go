package ui

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
)

func TestTemplatesLayers(t *testing.T) {
	var logs bytes.Buffer

	log.SetOutput(&logs)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
	})

	theme := fstest.MapFS{
		"templates/views/home.gohtml": &fstest.MapFile{Data: []byte(`{{ define "home" }}theme{{ end }}`)},
	}

	embedded := fstest.MapFS{
		"templates/views/home.gohtml":  &fstest.MapFile{Data: []byte(`{{ define "home" }}embedded{{ end }}`)},
		"templates/views/about.gohtml": &fstest.MapFile{Data: []byte(`{{ define "about" }}{{ template "page_start" . }}{{ end }}`)},
	}

	tmpl, err := Templates(nil, theme, embedded)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var buff bytes.Buffer

	if err := tmpl.ExecuteTemplate(&buff, "home", nil); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "theme", buff.String(); e != g {
		t.Errorf("home: expected '%v', got '%v'", e, g)
	}

	buff.Reset()

	if err := tmpl.ExecuteTemplate(&buff, "about", HeadTemplateData{PageTitle: "About"}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !strings.Contains(buff.String(), `id="navbar-container"`) {
		t.Errorf("about: expected the common page layout, got '%s'", buff.String())
	}

	if logs.Len() != 0 {
		t.Errorf("logs: expected nothing, got '%s'", logs.String())
	}
}
