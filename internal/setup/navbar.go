package setup

import (
	"context"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/wameed/portal/internal/config"
	"github.com/wameed/portal/internal/navbar"
)

func NewNavbarOptionsFromConfig(ctx context.Context, conf *config.Config, overrides ...fs.FS) ([]navbar.OptionFunc, error) {
	tmpl, err := navbar.Templates(overrides...)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse navbar templates")
	}

	links := make([]*navbar.Link, 0, len(conf.Navbar.Links))
	for _, l := range conf.Navbar.Links {
		links = append(links, &navbar.Link{
			Label:    string(l.Label),
			Href:     string(l.Href),
			NoActive: bool(l.NoActive),
			When:     string(l.When),
		})
	}

	destinations := navbar.Destinations{
		Home:    string(conf.Navbar.Destinations.Home),
		SignIn:  string(conf.Navbar.Destinations.SignIn),
		SignUp:  string(conf.Navbar.Destinations.SignUp),
		Profile: string(conf.Navbar.Destinations.Profile),
		Logout:  string(conf.Navbar.Destinations.Logout),
	}

	return []navbar.OptionFunc{
		navbar.WithTemplates(tmpl),
		navbar.WithLinks(links...),
		navbar.WithDestinations(destinations),
		navbar.WithBrandImage(string(conf.Navbar.BrandImage)),
		navbar.WithUserIcon(string(conf.Navbar.UserIcon)),
	}, nil
}
