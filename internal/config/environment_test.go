package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

func TestInterpolatedMap(t *testing.T) {
	type testCase struct {
		Path   string
		Env    map[string]string
		Assert func(t *testing.T, parsed InterpolatedMap)
	}

	testCases := []testCase{
		{
			Path: "testdata/environment/interpolated-map-1.yml",
			Env: map[string]string{
				"TEST_STORE_PATH": "foo.db",
				"TEST_SUB_PROP1":  "bar",
				"TEST_SUB2_PROP1": "baz",
			},
			Assert: func(t *testing.T, parsed InterpolatedMap) {
				if e, g := "foo.db", parsed.Data["path"]; e != g {
					t.Errorf("parsed.Data[\"path\"]: expected '%v', got '%v'", e, g)
				}

				if e, g := "bar", parsed.Data["sub"].(map[string]any)["subProp1"]; e != g {
					t.Errorf("parsed.Data[\"sub\"][\"subProp1\"]: expected '%v', got '%v'", e, g)
				}

				if e, g := "baz", parsed.Data["sub2"].(map[string]any)["sub2Prop1"].([]any)[0]; e != g {
					t.Errorf("parsed.Data[\"sub2\"][\"sub2Prop1\"][0]: expected '%v', got '%v'", e, g)
				}

				if e, g := "test", parsed.Data["sub2"].(map[string]any)["sub2Prop1"].([]any)[1]; e != g {
					t.Errorf("parsed.Data[\"sub2\"][\"sub2Prop1\"][1]: expected '%v', got '%v'", e, g)
				}
			},
		},
		{
			Path: "testdata/environment/interpolated-map-2.yml",
			Env: map[string]string{
				"BAR": "bar",
			},
			Assert: func(t *testing.T, parsed InterpolatedMap) {
				if e, g := "http://bar", parsed.Data["foo"]; e != g {
					t.Errorf("parsed.Data[\"foo\"]: expected '%v', got '%v'", e, g)
				}
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			data, err := os.ReadFile(tc.Path)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			withEnv(t, tc.Env)

			var interpolatedMap InterpolatedMap

			if err := yaml.Unmarshal(data, &interpolatedMap); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if tc.Assert != nil {
				tc.Assert(t, interpolatedMap)
			}
		})
	}
}

func TestInterpolatedDuration(t *testing.T) {
	type testCase struct {
		Path     string
		Env      map[string]string
		Expected time.Duration
	}

	testCases := []testCase{
		{
			Path:     "testdata/environment/interpolated-duration.yml",
			Env:      map[string]string{"MY_DURATION": "30s"},
			Expected: 30 * time.Second,
		},
		{
			Path:     "testdata/environment/interpolated-duration.yml",
			Env:      map[string]string{"MY_DURATION": "120"},
			Expected: 2 * time.Minute,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			data, err := os.ReadFile(tc.Path)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			withEnv(t, tc.Env)

			config := struct {
				Duration *InterpolatedDuration `yaml:"duration"`
			}{
				Duration: NewInterpolatedDuration(-1),
			}

			if err := yaml.Unmarshal(data, &config); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, time.Duration(*config.Duration); e != g {
				t.Errorf("config.Duration: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	withEnv(t, map[string]string{
		"TEST_STORE_PATH": "/tmp/wameed.db",
	})

	conf := NewDefaultConfig()

	if err := LoadFile("testdata/config.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":9090", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := "sqlite", string(conf.Store.Type); e != g {
		t.Errorf("conf.Store.Type: expected '%v', got '%v'", e, g)
	}

	if e, g := "/tmp/wameed.db", conf.Store.Options.Data["path"]; e != g {
		t.Errorf("conf.Store.Options.Data[\"path\"]: expected '%v', got '%v'", e, g)
	}

	if e, g := 3, len(conf.Navbar.Links); e != g {
		t.Fatalf("len(conf.Navbar.Links): expected '%v', got '%v'", e, g)
	}

	if !bool(conf.Navbar.Links[1].NoActive) {
		t.Errorf("conf.Navbar.Links[1].NoActive: expected true")
	}

	if e, g := "authenticated", string(conf.Navbar.Links[2].When); e != g {
		t.Errorf("conf.Navbar.Links[2].When: expected '%v', got '%v'", e, g)
	}
}

func TestDumpInterpolate(t *testing.T) {
	withEnv(t, map[string]string{
		"WAMEED_HTTP_ADDRESS": ":7070",
	})

	conf := NewDefaultConfig()

	if err := Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":7070", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := "cookie", string(conf.Store.Type); e != g {
		t.Errorf("conf.Store.Type: expected '%v', got '%v'", e, g)
	}

	if e, g := 4, len(conf.Navbar.Links); e != g {
		t.Errorf("len(conf.Navbar.Links): expected '%v', got '%v'", e, g)
	}
}

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()

	previous := getEnv
	t.Cleanup(func() {
		getEnv = previous
	})

	getEnv = func(key string) string {
		return env[key]
	}
}
