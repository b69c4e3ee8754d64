package navrouter

import "net/url"

// NavigatorOpt is a marker interface to ensure that options to Navigator are passed intentionally.
type NavigatorOpt interface {
	IsNavigatorOpt()
}

type intNavigatorOpt int

// IsNavigatorOpt implements NavigatorOpt.
func (i intNavigatorOpt) IsNavigatorOpt() {}

var (
	// NavReplace will cause this navigation to replace the
	// current history entry rather than pushing to the stack.
	// Implemented using window.history.replaceState()
	NavReplace NavigatorOpt = intNavigatorOpt(1)

	// NavSkipRender will cause this navigation to not call any route handlers.
	// It can be used when a component has already accounted for the render in
	// some other way and just wants to inform the Navigator of the current
	// logical path and query.
	NavSkipRender NavigatorOpt = intNavigatorOpt(2)
)

type navOpts []NavigatorOpt

func (no navOpts) has(o NavigatorOpt) bool {
	for _, o2 := range no {
		if o == o2 {
			return true
		}
	}
	return false
}

// Navigator is what views use to move around the app.
type Navigator interface {
	Navigate(path string, query url.Values, opts ...NavigatorOpt) error
	NavigateName(name string, params url.Values, opts ...NavigatorOpt) error
}

// NavigatorRef can be embedded in a view to have a Navigator injected at creation.
type NavigatorRef struct {
	Navigator // embed Navigator
}

// NavigatorSet implements NavigatorSetter.
func (h *NavigatorRef) NavigatorSet(o Navigator) {
	h.Navigator = o
}

// NavigatorSetter is implemented by anything that accepts a Navigator.
type NavigatorSetter interface {
	NavigatorSet(Navigator)
}
