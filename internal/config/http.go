package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address InterpolatedString `yaml:"address"`
	BaseURL InterpolatedString `yaml:"baseUrl"`
	Session Session            `yaml:"session"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	Name     InterpolatedString    `yaml:"name"`
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${WAMEED_HTTP_ADDRESS:-:8080}",
		BaseURL: "${WAMEED_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				Name:     "${WAMEED_HTTP_SESSION_COOKIE_NAME:-wameed_storage}",
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
				MaxAge:   NewInterpolatedDuration(30 * 24 * time.Hour),
			},
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":        []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":        []*yaml.Comment{yaml.HeadComment(" Public base URL")},
		".session.keys":   []*yaml.Comment{yaml.HeadComment(" Cookie signing keys (random key generated at startup if empty)")},
		".session.cookie": []*yaml.Comment{yaml.HeadComment(" Client storage cookie options")},
	}
}
