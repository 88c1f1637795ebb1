package config

import "github.com/goccy/go-yaml"

type UI struct {
	ThemeDir InterpolatedString `yaml:"themeDir"`
}

func NewDefaultUIConfig() UI {
	return UI{
		ThemeDir: "${WAMEED_UI_THEME_DIR:-}",
	}
}

func NewUIConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":          []*yaml.Comment{yaml.HeadComment(" User interface configuration")},
		".themeDir": []*yaml.Comment{yaml.HeadComment(" Optional directory whose templates and assets override the embedded ones")},
	}
}
