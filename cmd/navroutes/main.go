// Command navroutes inspects the studio route table and generates route
// tables from manifests.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kfpstudio/navrouter"
	"github.com/kfpstudio/navrouter/internal/app"
	"github.com/kfpstudio/navrouter/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "navroutes",
		Short: "Inspect the studio route table",
		Long: `navroutes works on the studio's client side route table without a browser.

It can list the routes, resolve a path the way the browser would, build
the URL for a named route and generate Go route tables from a manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (TOML)")

	rootCmd.AddCommand(
		listCmd(opts),
		resolveCmd(opts),
		urlCmd(opts),
		checkCmd(),
		genCmd(),
	)

	return rootCmd
}

// loadApp builds the app on an in-memory history positioned at the configured start path.
func (o *rootOptions) loadApp() (*app.App, error) {

	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return app.New(cfg, navrouter.NewMemoryHistory(cfg.StartPath), logger)
}
