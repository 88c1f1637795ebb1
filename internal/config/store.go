package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/wameed/portal/pkg/kvstore"
	"github.com/wameed/portal/pkg/kvstore/cookie"

	_ "github.com/wameed/portal/pkg/kvstore/all"
)

// Store configures the per-client key-value storage holding the current user.
type Store struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Type: InterpolatedString(fmt.Sprintf("${WAMEED_STORE_TYPE:-%s}", cookie.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"path": "${WAMEED_STORE_PATH:-data.db}",
			},
		},
	}
}

func NewStoreConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" Client storage configuration")},
		".type":    []*yaml.Comment{yaml.HeadComment(" Storage type", fmt.Sprintf(" Available: %v", kvstore.Registered()))},
		".options": []*yaml.Comment{yaml.HeadComment(" Storage options ('path' is used by the sqlite storage)")},
	}
}
