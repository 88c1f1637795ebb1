package ui

import "time"

// NavbarItem is a navigation link of the navbar.
type NavbarItem struct {
	Label    string
	URL      string
	NoActive bool
}

type NavbarDestinations struct {
	Home    string
	SignIn  string
	SignUp  string
	Profile string
	Logout  string
}

type NavbarTemplateData struct {
	BrandImage    string
	UserIcon      string
	NavbarItems   []NavbarItem
	Destinations  NavbarDestinations
	Authenticated bool
	Username      string
	SignedInAt    *time.Time
}
