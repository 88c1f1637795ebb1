package config

import (
	"bytes"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Logger    Logger    `yaml:"logger"`
	HTTP      HTTP      `yaml:"http"`
	Store     Store     `yaml:"store"`
	Navbar    Navbar    `yaml:"navbar"`
	UI        UI        `yaml:"ui"`
	RateLimit RateLimit `yaml:"rateLimit"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Logger:    NewDefaultLoggerConfig(),
		HTTP:      NewDefaultHTTPConfig(),
		Store:     NewDefaultStoreConfig(),
		Navbar:    NewDefaultNavbarConfig(),
		UI:        NewDefaultUIConfig(),
		RateLimit: NewDefaultRateLimitConfig(),
	}
}

// Interpolate round-trips conf through YAML so that every default holding
// ${VAR} references gets expanded.
func Interpolate(conf *Config) error {
	var buff bytes.Buffer

	if err := Dump(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	if err := Load(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func LoadFile(path string, conf *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}

	defer file.Close()

	if err := Load(file, conf); err != nil {
		return errors.Wrapf(err, "could not load config file '%s'", path)
	}

	return nil
}

func Load(r io.Reader, conf *Config) error {
	decoder := yaml.NewDecoder(r)

	if err := decoder.Decode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var sections = map[string]yaml.CommentMap{
	"$.logger":    NewLoggerConfigCommentMap(),
	"$.http":      NewHTTPConfigCommentMap(),
	"$.store":     NewStoreConfigCommentMap(),
	"$.navbar":    NewNavbarConfigCommentMap(),
	"$.ui":        NewUIConfigCommentMap(),
	"$.rateLimit": NewRateLimitConfigCommentMap(),
}

func Dump(w io.Writer, conf *Config) error {
	configComments := yaml.CommentMap{}
	for configSelector, sectionComments := range sections {
		for sectionSelector, comments := range sectionComments {
			configComments[configSelector+sectionSelector] = comments
		}
	}

	encoder := yaml.NewEncoder(w, yaml.WithComment(configComments))
	defer encoder.Close()

	if err := encoder.Encode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
