package config

import "github.com/goccy/go-yaml"

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

func NewDefaultRateLimitConfig() RateLimit {
	return RateLimit{
		Rate:  1,
		Burst: 5,
	}
}

func NewRateLimitConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":       []*yaml.Comment{yaml.HeadComment(" Sign-in rate limiting, per client address")},
		".rate":  []*yaml.Comment{yaml.HeadComment(" Allowed sign-in requests per second")},
		".burst": []*yaml.Comment{yaml.HeadComment(" Maximum burst of sign-in requests")},
	}
}
