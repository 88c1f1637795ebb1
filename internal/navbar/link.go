package navbar

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Link is an entry of the navigation bar.
type Link struct {
	Label string
	Href  string
	// NoActive exempts the link from active highlighting.
	NoActive bool
	// When is an optional expr-lang rule deciding whether the link is shown.
	When string

	compileOnce sync.Once
	program     *vm.Program
	compileErr  error
}

// Visible evaluates the link rule against env. Links without a rule are
// always visible.
func (l *Link) Visible(env map[string]any) (bool, error) {
	if l.When == "" {
		return true, nil
	}

	l.compileOnce.Do(func() {
		program, err := expr.Compile(l.When, expr.AsBool(), expr.Env(env))
		if err != nil {
			l.compileErr = errors.Wrapf(err, "could not compile rule of link '%s'", l.Href)
			return
		}

		l.program = program
	})
	if l.compileErr != nil {
		return false, errors.WithStack(l.compileErr)
	}

	result, err := expr.Run(l.program, env)
	if err != nil {
		return false, errors.Wrapf(err, "could not run rule of link '%s'", l.Href)
	}

	visible, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", l.When, result)
	}

	return visible, nil
}

// DefaultLinks returns the fixed ordered navigation links: home, predicted
// fires, detected fires and the about anchor.
func DefaultLinks() []*Link {
	return []*Link{
		{Label: "الصفحة الرئيسية", Href: "/"},
		{Label: "التنبؤ بالحرائق", Href: "/predicted-fires"},
		{Label: "رصد الحرائق", Href: "/detected-fires"},
		{Label: "من نحن", Href: "/#about", NoActive: true},
	}
}

// Destinations are the fixed targets of the authentication controls.
type Destinations struct {
	Home    string
	SignIn  string
	SignUp  string
	Profile string
	Logout  string
}

func DefaultDestinations() Destinations {
	return Destinations{
		Home:    "/",
		SignIn:  "/sign-in",
		SignUp:  "/sign-up",
		Profile: "/profile",
		Logout:  "/logout",
	}
}
