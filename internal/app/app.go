// Package app assembles the studio front end: the route table, the router
// bound to browser history and the shell that shows the routed view.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/kfpstudio/navrouter"
	"github.com/kfpstudio/navrouter/internal/config"
)

// App is one running studio front end.
type App struct {
	router *navrouter.Router
	shell  *Shell
	logger *slog.Logger
}

// New builds the app.  If h is nil the browser history is used, in
// fragment mode if the config asks for it.
func New(cfg config.Config, h navrouter.History, logger *slog.Logger) (*App, error) {

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h == nil {
		h = navrouter.NewBrowserHistory(cfg.UseFragment)
	}

	r := navrouter.New(h,
		navrouter.WithLogger(logger.With(slog.String("component", "router"))),
		navrouter.WithBasePath(cfg.CleanBasePath()),
	)
	if err := r.AddRoutes(Routes()); err != nil {
		return nil, fmt.Errorf("app: install routes: %w", err)
	}

	shell := newShell(r, logger.With(slog.String("component", "shell")))
	r.SetHandler(shell)
	r.SetNotFound(navrouter.RouteHandlerFunc(shell.handleNotFound))

	return &App{router: r, shell: shell, logger: logger}, nil
}

// Start shows the view for the current location and follows back/forward.
// An unknown location is not an error, the shell shows nothing for it.
func (a *App) Start() error {
	if err := a.router.Pull(); err != nil && !errors.Is(err, navrouter.ErrNotFound) {
		return err
	}
	return a.router.Listen()
}

// Stop stops following back/forward.
func (a *App) Stop() error {
	return a.router.Close()
}

// Router returns the router.
func (a *App) Router() *navrouter.Router { return a.router }

// Shell returns the shell.
func (a *App) Shell() *Shell { return a.shell }

// NewPipeline opens an empty builder.
func (a *App) NewPipeline() error {
	return a.router.NavigateName(RoutePipelineBuilder, nil)
}

// EditPipeline opens the builder on an existing pipeline.
func (a *App) EditPipeline(pipelineID string) error {
	return a.router.NavigateName(RoutePipelineBuilderEdit, url.Values{ParamPipelineID: {pipelineID}})
}
