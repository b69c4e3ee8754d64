package navrouter

import "errors"

// Resolution and navigation errors.
var (
	ErrNotFound      = errors.New("navrouter: no route matches path")
	ErrRedirectLoop  = errors.New("navrouter: too many redirects")
	ErrUnknownRoute  = errors.New("navrouter: unknown route name")
	ErrMissingParam  = errors.New("navrouter: missing param")
	ErrNoActiveRoute = errors.New("navrouter: no active route")
	ErrNotBrowser    = errors.New("navrouter: not in browser (js) environment")
)

// Route table configuration defects, reported by RouteTable.Validate.
var (
	ErrDuplicateName    = errors.New("duplicate route name")
	ErrDuplicateRoot    = errors.New("more than one root route")
	ErrInvalidPattern   = errors.New("invalid route pattern")
	ErrInvalidRoute     = errors.New("invalid route")
	ErrDanglingRedirect = errors.New("redirect target matches no route")
)
