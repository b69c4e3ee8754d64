package navrouter

import (
	"errors"
	"fmt"
	"strings"
)

// Route binds a path pattern to a view.
//
// Path may contain parameter segments of the form ":name".  Component is
// whatever the application uses to produce a view; the router never looks
// inside it and the same value may be bound by several routes.  A route
// with a Redirect has no Component: navigating to it lands on the redirect
// target instead.  Parameters captured by Path may be reused in Redirect.
type Route struct {
	Path      string
	Name      string
	Component interface{}
	Redirect  string
}

// RouteTable is an ordered list of routes.  Order only matters to break ties
// between two patterns of equal specificity, the earlier one wins.
type RouteTable []Route

// ByName returns the route with the given name.
func (rt RouteTable) ByName(name string) (Route, bool) {
	if name == "" {
		return Route{}, false
	}
	for _, r := range rt {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Names returns the names of all named routes in table order.
func (rt RouteTable) Names() []string {
	ret := make([]string, 0, len(rt))
	for _, r := range rt {
		if r.Name != "" {
			ret = append(ret, r.Name)
		}
	}
	return ret
}

// Validate checks the table for configuration defects and returns all of
// them joined together, or nil.  Each defect wraps one of ErrDuplicateName,
// ErrDuplicateRoot, ErrInvalidPattern, ErrInvalidRoute or ErrDanglingRedirect.
func (rt RouteTable) Validate() error {

	var errs []error

	type parsed struct {
		route Route
		mp    mpath
	}
	plist := make([]parsed, 0, len(rt))

	names := make(map[string]int, len(rt))
	rootIdx := -1

	for i, r := range rt {

		if strings.TrimSpace(r.Path) == "" {
			errs = append(errs, fmt.Errorf("route %d (%q): %w: empty path", i, r.Name, ErrInvalidPattern))
			continue
		}

		mp, err := parseMpath(r.Path)
		if err != nil {
			errs = append(errs, fmt.Errorf("route %d (%q): %w", i, r.Name, err))
			continue
		}

		if mp.String() == "/" {
			if rootIdx >= 0 {
				errs = append(errs, fmt.Errorf("route %d: %w (first at %d)", i, ErrDuplicateRoot, rootIdx))
			} else {
				rootIdx = i
			}
		}

		if r.Name != "" {
			if j, ok := names[r.Name]; ok {
				errs = append(errs, fmt.Errorf("route %d: %w %q (first at %d)", i, ErrDuplicateName, r.Name, j))
			} else {
				names[r.Name] = i
			}
		}

		switch {
		case r.Redirect != "" && r.Component != nil:
			errs = append(errs, fmt.Errorf("route %d (%q): %w: both component and redirect set", i, r.Path, ErrInvalidRoute))
		case r.Redirect == "" && r.Component == nil:
			errs = append(errs, fmt.Errorf("route %d (%q): %w: neither component nor redirect set", i, r.Path, ErrInvalidRoute))
		}

		plist = append(plist, parsed{route: r, mp: mp})
	}

	for i, p := range plist {
		if p.route.Redirect == "" {
			continue
		}
		if err := checkRedirect(p.mp, p.route.Redirect, func(target string) bool {
			for j, q := range plist {
				if j == i || q.route.Component == nil {
					continue
				}
				if _, exact, ok := q.mp.match(target); ok && exact {
					return true
				}
			}
			return false
		}); err != nil {
			errs = append(errs, fmt.Errorf("route %q: %w", p.route.Path, err))
		}
	}

	return errors.Join(errs...)
}

// checkRedirect makes sure a redirect can be built from the source params and,
// when it has no params of its own, that something will render at the target.
func checkRedirect(src mpath, redirect string, resolves func(string) bool) error {

	rmp, err := parseMpath(redirect)
	if err != nil {
		return err
	}

	rparams := rmp.paramNames()
	if len(rparams) == 0 {
		if !resolves(rmp.String()) {
			return fmt.Errorf("%w: %q", ErrDanglingRedirect, redirect)
		}
		return nil
	}

	have := src.paramNames()
outer:
	for _, n := range rparams {
		for _, h := range have {
			if n == h {
				continue outer
			}
		}
		return fmt.Errorf("%w: %q uses param %q not captured by %q", ErrDanglingRedirect, redirect, n, src.String())
	}

	return nil
}
