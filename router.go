package navrouter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
)

// maxRedirects bounds how many redirect routes a single navigation may pass through.
const maxRedirects = 8

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// Option configures a Router.
type Option func(*Router)

// WithEventEnv makes the router hold the event env lock while route handlers
// run and request a render afterwards.
func WithEventEnv(e EventEnv) Option {
	return func(r *Router) { r.eventEnv = e }
}

// WithLogger sets the logger.  The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBasePath mounts the app under a path prefix, e.g. "/studio".
// Routes are declared and resolved without it; it is added when writing
// history and stripped when reading the browser location.
func WithBasePath(p string) Option {
	return func(r *Router) {
		p = path.Clean("/" + p)
		if p == "/" {
			p = ""
		}
		r.basePath = p
	}
}

// New returns a new Router writing to h.
func New(h History, opts ...Option) *Router {
	r := &Router{
		history:      h,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		byName:       make(map[string]int),
		bindParamMap: make(map[string]BindParam),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Router handles URL routing.
type Router struct {
	history  History
	eventEnv EventEnv
	logger   *slog.Logger
	basePath string

	rlist           []routeEntry
	byName          map[string]int
	prefixList      []prefixEntry
	handler         RouteHandler
	notFoundHandler RouteHandler

	current *RouteMatch

	bindRouteMPath mpath // the pattern of the current route, so bound params can be merged back in
	bindParamMap   map[string]BindParam
}

type routeEntry struct {
	route    Route
	mpath    mpath
	redirect mpath
}

type prefixEntry struct {
	mpath mpath
	rh    RouteHandler
}

// MustAddRoutes is like AddRoutes but panics upon error.
func (r *Router) MustAddRoutes(rt RouteTable) {
	err := r.AddRoutes(rt)
	if err != nil {
		panic(err)
	}
}

// AddRoutes validates rt and installs it.  The table is copied, later
// changes to the caller's slice have no effect.  It may only be called once.
func (r *Router) AddRoutes(rt RouteTable) error {

	if r.rlist != nil {
		return errors.New("navrouter: routes already installed")
	}

	if err := rt.Validate(); err != nil {
		return err
	}

	rlist := make([]routeEntry, 0, len(rt))
	for i, rte := range rt {
		mp, err := parseMpath(rte.Path)
		if err != nil {
			return err
		}
		re := routeEntry{route: rte, mpath: mp}
		if rte.Redirect != "" {
			re.redirect, err = parseMpath(rte.Redirect)
			if err != nil {
				return err
			}
		}
		if rte.Name != "" {
			r.byName[rte.Name] = i
		}
		rlist = append(rlist, re)
	}
	r.rlist = rlist

	r.logger.Debug("routes installed", slog.Int("count", len(rlist)))

	return nil
}

// MustAddRoute is like AddRoute but panics upon error.
func (r *Router) MustAddRoute(path string, rh RouteHandler) {
	err := r.AddRoute(path, rh)
	if err != nil {
		panic(err)
	}
}

// AddRoute adds a prefix handler.  It is called, before the route handler,
// for every navigation whose path starts with path, whether or not a named
// route matches.  Useful for layouts and navigation bars.
func (r *Router) AddRoute(path string, rh RouteHandler) error {

	mp, err := parseMpath(path)
	if err != nil {
		return err
	}

	r.prefixList = append(r.prefixList, prefixEntry{
		mpath: mp,
		rh:    rh,
	})

	return nil
}

// SetHandler assigns the handler called with the resolved route.
func (r *Router) SetHandler(rh RouteHandler) {
	r.handler = rh
}

// SetNotFound assigns the handler for the case of no exact match route.
func (r *Router) SetNotFound(rh RouteHandler) {
	r.notFoundHandler = rh
}

// Routes returns a copy of the installed table.
func (r *Router) Routes() RouteTable {
	ret := make(RouteTable, len(r.rlist))
	for i, re := range r.rlist {
		ret[i] = re.route
	}
	return ret
}

// Current returns the match from the last successful navigation, or nil.
func (r *Router) Current() *RouteMatch {
	return r.current
}

// Resolve finds the route for pathAndQuery without touching history or
// calling handlers.  Redirects are followed.  It returns an error wrapping
// ErrNotFound if nothing matches exactly.
func (r *Router) Resolve(pathAndQuery string) (*RouteMatch, error) {
	u, err := parseLocation(pathAndQuery)
	if err != nil {
		return nil, err
	}
	rm, _, err := r.resolve(u.EscapedPath(), u.Query())
	return rm, err
}

// resolve returns the match along with the entry that produced it.
func (r *Router) resolve(p string, query url.Values) (*RouteMatch, *routeEntry, error) {

	p = path.Clean("/" + p)
	from := ""

	for hops := 0; ; hops++ {

		re, params := r.lookup(p)
		if re == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}

		if re.redirect != nil {
			if hops >= maxRedirects {
				return nil, nil, fmt.Errorf("%w: starting at %s", ErrRedirectLoop, from)
			}
			if from == "" {
				from = p
			}
			target, _, err := re.redirect.merge(params.Values())
			if err != nil {
				return nil, nil, fmt.Errorf("navrouter: redirect from %s: %w", p, err)
			}
			r.logger.Debug("redirect", slog.String("from", p), slog.String("to", target))
			p = path.Clean(target)
			continue
		}

		// merge any other values from query into params, path params win
		pvals := params.Values()
		if pvals == nil {
			pvals = make(url.Values, len(query))
		}
		for k, v := range query {
			if pvals[k] == nil {
				pvals[k] = v
			}
		}

		return &RouteMatch{
			Path:           p,
			RoutePath:      re.mpath.String(),
			Name:           re.route.Name,
			Component:      re.route.Component,
			Params:         pvals,
			PathParams:     params,
			Query:          query,
			Exact:          true,
			RedirectedFrom: from,
			router:         r,
		}, re, nil
	}
}

// lookup returns the most specific exact match.  Among patterns with the same
// number of static characters the earlier one wins.
func (r *Router) lookup(p string) (*routeEntry, PathParamList) {

	var best *routeEntry
	var bestParams PathParamList
	bestScore := -1

	for i := range r.rlist {
		re := &r.rlist[i]
		params, exact, ok := re.mpath.match(p)
		if !ok || !exact {
			continue
		}
		if score := re.mpath.staticLen(); score > bestScore {
			best, bestParams, bestScore = re, params, score
		}
	}

	return best, bestParams
}

// PathFor builds the path for the named route.  Values for the route's
// params are put into the path and the rest become the query string.
// A missing param gives an error wrapping ErrMissingParam, the returned
// path then has "_" in its place.
func (r *Router) PathFor(name string, params url.Values) (string, error) {

	i, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	outPath, other, err := r.rlist[i].mpath.merge(params)
	if q := other.Encode(); q != "" {
		outPath += "?" + q
	}
	if err != nil {
		return outPath, fmt.Errorf("navrouter: route %q: %w", name, err)
	}
	return outPath, nil
}

// MustNavigate is like Navigate but panics upon error.
func (r *Router) MustNavigate(path string, query url.Values, opts ...NavigatorOpt) {
	err := r.Navigate(path, query, opts...)
	if err != nil {
		panic(err)
	}
}

// Navigate will go the specified path and query.  The history entry is
// pushed (or replaced with NavReplace) and the route handlers are called
// unless NavSkipRender is given.  If the path redirects, the history gets
// the final path.  If nothing matches the URL still changes, the not found
// handler is called and an error wrapping ErrNotFound is returned.
func (r *Router) Navigate(p string, query url.Values, opts ...NavigatorOpt) error {

	pq := p
	if q := query.Encode(); q != "" {
		if strings.Contains(pq, "?") {
			pq += "&" + q
		} else {
			pq += "?" + q
		}
	}

	u, err := parseLocation(pq)
	if err != nil {
		return err
	}

	return r.navigate(u.EscapedPath(), u.Query(), navOpts(opts), true)
}

// NavigateName navigates to the named route, see PathFor.
func (r *Router) NavigateName(name string, params url.Values, opts ...NavigatorOpt) error {
	p, err := r.PathFor(name, params)
	if err != nil {
		return err
	}
	return r.Navigate(p, nil, opts...)
}

// Pull will read the current browser URL and navigate to it without adding a
// history entry.  This is called once at application startup and again on
// every back/forward once Listen is used.
func (r *Router) Pull() error {

	u, err := r.history.Location()
	if err != nil {
		return err
	}

	p := u.EscapedPath()
	if r.basePath != "" {
		switch {
		case p == r.basePath:
			p = "/"
		case strings.HasPrefix(p, r.basePath+"/"):
			p = strings.TrimPrefix(p, r.basePath)
		default:
			r.logger.Info("location outside base path",
				slog.String("path", p), slog.String("basePath", r.basePath))
			r.dispatch(p, u.Query(), nil, nil)
			return fmt.Errorf("%w: %s is outside %s", ErrNotFound, p, r.basePath)
		}
	}

	return r.navigate(p, u.Query(), navOpts{NavReplace}, false)
}

// Listen makes the router follow browser back/forward.
func (r *Router) Listen() error {
	return r.history.Listen(func() {
		if err := r.Pull(); err != nil {
			r.logger.Warn("popstate navigation failed", slog.Any("error", err))
		}
	})
}

// Close stops following browser back/forward.
func (r *Router) Close() error {
	return r.history.Unlisten()
}

// navigate resolves and dispatches.  If write is false history is only touched
// when a redirect changed the path.
func (r *Router) navigate(p string, query url.Values, opts navOpts, write bool) error {

	rm, re, err := r.resolve(p, query)

	switch {
	case errors.Is(err, ErrNotFound):
		if write {
			r.writeHistory(p, query, opts.has(NavReplace))
		}
		r.logger.Info("route not found", slog.String("path", p))
		if opts.has(NavSkipRender) {
			r.setCurrent(nil, nil)
		} else {
			r.dispatch(path.Clean("/"+p), query, nil, nil)
		}
		return err
	case err != nil:
		return err
	}

	if write || rm.RedirectedFrom != "" {
		r.writeHistory(rm.Path, query, opts.has(NavReplace) || !write)
	}

	r.logger.Debug("navigate",
		slog.String("path", rm.Path),
		slog.String("route", rm.Name),
		slog.String("redirectedFrom", rm.RedirectedFrom))

	if opts.has(NavSkipRender) {
		r.setCurrent(rm, re)
		return nil
	}

	r.dispatch(rm.Path, query, rm, re)

	return nil
}

func (r *Router) writeHistory(p string, query url.Values, replace bool) {

	pq := r.basePath + p
	if q := query.Encode(); q != "" {
		pq += "?" + q
	}

	if replace {
		r.history.Replace(pq)
	} else {
		r.history.Push(pq)
	}
}

func (r *Router) setCurrent(rm *RouteMatch, re *routeEntry) {
	for k := range r.bindParamMap {
		delete(r.bindParamMap, k)
	}
	r.current = rm
	r.bindRouteMPath = nil
	if re != nil {
		r.bindRouteMPath = re.mpath
	}
}

// dispatch runs the prefix handlers then the route (or not found) handler.
// rm is nil when nothing matched.
func (r *Router) dispatch(p string, query url.Values, rm *RouteMatch, re *routeEntry) {

	if r.eventEnv != nil {
		r.eventEnv.Lock()
		defer r.eventEnv.UnlockRender()
	}

	if rm != nil {
		r.setCurrent(rm, re)
	} else {
		r.setCurrent(nil, nil)
	}

	for _, pe := range r.prefixList {
		params, exact, ok := pe.mpath.match(p)
		if !ok {
			continue
		}
		pvals := params.Values()
		if pvals == nil {
			pvals = make(url.Values)
		}
		for k, v := range query {
			if pvals[k] == nil {
				pvals[k] = v
			}
		}
		pe.rh.RouteHandle(&RouteMatch{
			Path:       p,
			RoutePath:  pe.mpath.String(),
			Params:     pvals,
			PathParams: params,
			Query:      query,
			Exact:      exact,
			router:     r,
		})
	}

	if rm == nil {
		if r.notFoundHandler != nil {
			r.notFoundHandler.RouteHandle(&RouteMatch{
				router: r,
				Path:   p,
				Query:  query,
			})
		}
		return
	}

	if r.handler != nil {
		r.handler.RouteHandle(rm)
	}
}

// MustPush is like Push but panics upon error.
func (r *Router) MustPush(opts ...NavigatorOpt) {
	if err := r.Push(opts...); err != nil {
		panic(err)
	}
}

// Push will take any bound parameters and put them into the URL in the appropriate place.
// Path params not bound keep their current values.  Handlers are not called.
func (r *Router) Push(opts ...NavigatorOpt) error {

	if r.bindRouteMPath == nil || r.current == nil {
		return ErrNoActiveRoute
	}

	params := r.current.PathParams.Values()
	if params == nil {
		params = make(url.Values, len(r.bindParamMap))
	}
	for k, v := range r.bindParamMap {
		vals := v.BindParamRead()
		if len(vals) == 0 {
			params.Del(k)
			continue
		}
		params[k] = vals
	}

	outPath, outParams, err := r.bindRouteMPath.merge(params)
	if err != nil {
		return err
	}

	r.writeHistory(outPath, outParams, navOpts(opts).has(NavReplace))

	return nil
}

// QueryUpdate implements QueryUpdater by replacing the current history entry
// with the bound params.
func (r *Router) QueryUpdate() {
	if err := r.Push(NavReplace); err != nil {
		r.logger.Warn("query update failed", slog.Any("error", err))
	}
}

// UnbindParams will remove any previous parameter bindings.
// Note that this is called implicitly when navigation occurs since that involves re-binding newly based on the
// path being navigated to.
func (r *Router) UnbindParams() {
	for k := range r.bindParamMap {
		delete(r.bindParamMap, k)
	}
}

// RouteHandler implementations are called in response to a route matching (being navigated to).
type RouteHandler interface {
	RouteHandle(rm *RouteMatch)
}

// RouteHandlerFunc implements RouteHandler as a function.
type RouteHandlerFunc func(rm *RouteMatch)

// RouteHandle implements the RouteHandler interface.
func (f RouteHandlerFunc) RouteHandle(rm *RouteMatch) { f(rm) }

// RouteMatch describes a request to navigate to a route.
type RouteMatch struct {
	Path           string        // escaped path navigated to, after any redirects
	RoutePath      string        // route path pattern with params as :param
	Name           string        // route name, empty for prefix handlers and not found
	Component      interface{}   // the Component of the matched Route
	Params         url.Values    // parameters (combined query and route params)
	PathParams     PathParamList // only the params captured from the path
	Query          url.Values    // only the query params
	Exact          bool          // true if the path is an exact match or false if just the prefix
	RedirectedFrom string        // the originally requested path if a redirect was followed

	router *Router
}

// Bind adds a BindParam to the list of bound parameters.
// Later calls to Bind with the same name will replace the bind
// from earlier calls.  The param is written with the current value.
func (r *RouteMatch) Bind(name string, param BindParam) {
	if r.router == nil {
		return
	}
	if v, ok := r.Params[name]; ok {
		param.BindParamWrite(v)
	}
	r.router.bindParamMap[name] = param
}
