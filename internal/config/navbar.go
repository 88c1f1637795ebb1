package config

import (
	"github.com/goccy/go-yaml"
	"github.com/wameed/portal/internal/navbar"
)

type Navbar struct {
	BrandImage   InterpolatedString `yaml:"brandImage"`
	UserIcon     InterpolatedString `yaml:"userIcon"`
	Destinations Destinations       `yaml:"destinations"`
	Links        []Link             `yaml:"links"`
}

type Destinations struct {
	Home    InterpolatedString `yaml:"home"`
	SignIn  InterpolatedString `yaml:"signIn"`
	SignUp  InterpolatedString `yaml:"signUp"`
	Profile InterpolatedString `yaml:"profile"`
	Logout  InterpolatedString `yaml:"logout"`
}

type Link struct {
	Label    InterpolatedString `yaml:"label"`
	Href     InterpolatedString `yaml:"href"`
	NoActive InterpolatedBool   `yaml:"noActive"`
	When     InterpolatedString `yaml:"when,omitempty"`
}

func NewDefaultNavbarConfig() Navbar {
	destinations := navbar.DefaultDestinations()

	links := make([]Link, 0)
	for _, l := range navbar.DefaultLinks() {
		links = append(links, Link{
			Label:    InterpolatedString(l.Label),
			Href:     InterpolatedString(l.Href),
			NoActive: InterpolatedBool(l.NoActive),
			When:     InterpolatedString(l.When),
		})
	}

	return Navbar{
		BrandImage: "/assets/images/wameed-logo-bar.svg",
		UserIcon:   "/assets/images/user-icon.svg",
		Destinations: Destinations{
			Home:    InterpolatedString(destinations.Home),
			SignIn:  InterpolatedString(destinations.SignIn),
			SignUp:  InterpolatedString(destinations.SignUp),
			Profile: InterpolatedString(destinations.Profile),
			Logout:  InterpolatedString(destinations.Logout),
		},
		Links: links,
	}
}

func NewNavbarConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":              []*yaml.Comment{yaml.HeadComment(" Navigation bar configuration")},
		".brandImage":   []*yaml.Comment{yaml.HeadComment(" Brand image URL")},
		".userIcon":     []*yaml.Comment{yaml.HeadComment(" Icon shown next to the welcome text")},
		".destinations": []*yaml.Comment{yaml.HeadComment(" Fixed navigation destinations (absolute routes)")},
		".links": []*yaml.Comment{yaml.HeadComment(
			" Ordered navigation links",
			" 'noActive' exempts a link from active highlighting",
			" 'when' is an optional visibility rule, see https://expr-lang.org/docs/language-definition",
			" (available variables: authenticated, name, path)",
		)},
	}
}
