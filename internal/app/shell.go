package app

import (
	"log/slog"

	"github.com/kfpstudio/navrouter"
)

// Shell is the content region of the app.  It is the router's handler:
// every navigation replaces the view it holds.
type Shell struct {
	nav    navrouter.Navigator
	qu     navrouter.QueryUpdater
	logger *slog.Logger

	current  View
	match    *navrouter.RouteMatch
	notFound string
}

func newShell(r *navrouter.Router, logger *slog.Logger) *Shell {
	return &Shell{nav: r, qu: r, logger: logger}
}

// RouteHandle implements navrouter.RouteHandler.
func (s *Shell) RouteHandle(rm *navrouter.RouteMatch) {

	b, ok := rm.Component.(*ViewBinding)
	if !ok {
		s.logger.Error("route has no view binding", slog.String("route", rm.Name))
		s.current, s.match = nil, nil
		return
	}

	v := b.New(rm)
	if ns, ok := v.(navrouter.NavigatorSetter); ok {
		ns.NavigatorSet(s.nav)
	}
	if qs, ok := v.(navrouter.QueryUpdaterSetter); ok {
		qs.QueryUpdaterSet(s.qu)
	}

	s.current, s.match, s.notFound = v, rm, ""

	s.logger.Info("show view",
		slog.String("route", rm.Name),
		slog.String("view", b.View),
		slog.String("path", rm.Path))
}

func (s *Shell) handleNotFound(rm *navrouter.RouteMatch) {
	s.current, s.match, s.notFound = nil, nil, rm.Path
	s.logger.Warn("no view for path", slog.String("path", rm.Path))
}

// Current returns the view being shown, nil if none.
func (s *Shell) Current() View {
	return s.current
}

// Match returns the route match of the view being shown.
func (s *Shell) Match() *navrouter.RouteMatch {
	return s.match
}

// NotFound returns the path of the last navigation if it matched nothing.
func (s *Shell) NotFound() (string, bool) {
	return s.notFound, s.notFound != ""
}
