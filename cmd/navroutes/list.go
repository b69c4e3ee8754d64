package main

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kfpstudio/navrouter"
	"github.com/kfpstudio/navrouter/internal/app"
)

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the routes in table order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATH\tTARGET")
			for _, r := range a.Router().Routes() {
				name := r.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, r.Path, target(r))
			}
			return tw.Flush()
		},
	}
}

func target(r navrouter.Route) string {
	if r.Redirect != "" {
		return "-> " + r.Redirect
	}
	if b, ok := r.Component.(*app.ViewBinding); ok {
		return b.View
	}
	return fmt.Sprintf("%v", r.Component)
}

func resolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show which route and view a path resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp()
			if err != nil {
				return err
			}

			rm, err := a.Router().Resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "route:  %s\n", rm.Name)
			fmt.Fprintf(out, "path:   %s\n", rm.Path)
			fmt.Fprintf(out, "view:   %s\n", target(navrouter.Route{Component: rm.Component}))
			if rm.RedirectedFrom != "" {
				fmt.Fprintf(out, "from:   %s\n", rm.RedirectedFrom)
			}
			if len(rm.Params) > 0 {
				fmt.Fprintf(out, "params: %s\n", formatValues(rm.Params))
			}
			return nil
		},
	}
}

func urlCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "url <name> [key=value...]",
		Short: "Build the path of a named route",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.loadApp()
			if err != nil {
				return err
			}

			params := make(url.Values, len(args)-1)
			for _, kv := range args[1:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("param %q is not key=value", kv)
				}
				params.Add(k, v)
			}

			p, err := a.Router().PathFor(args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := app.Routes()
			if err := rt.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d routes, %d named\n", len(rt), len(rt.Names()))
			return nil
		},
	}
}

func formatValues(v url.Values) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strings.Join(v[k], ",")
	}
	return strings.Join(parts, " ")
}
