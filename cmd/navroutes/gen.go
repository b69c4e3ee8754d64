package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kfpstudio/navrouter/rgen"
)

func genCmd() *cobra.Command {
	var (
		manifest    string
		output      string
		packageName string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a Go route table from a TOML manifest",
		Long: `Generate reads a route manifest and writes a Go file declaring the route table.

Example:
  navroutes gen -m internal/app/routes.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := rgen.New().
				SetManifest(manifest).
				SetOutput(output).
				SetPackageName(packageName).
				Generate()
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "routes.toml", "route manifest")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default "+rgen.DefaultOutputName+" next to the manifest)")
	cmd.Flags().StringVarP(&packageName, "package", "p", "", "package name (default from manifest or output dir)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")

	return cmd
}
