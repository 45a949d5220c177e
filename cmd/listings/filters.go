package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

var filtersCmd = &cobra.Command{
	Use:   "filters [market]",
	Short: "List the filters applied for a market, in order",
	Example: `  listings filters
  listings filters advisors`,
	GroupID: "search",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := []model.Kind{model.KindListing, model.KindAdvisor, model.KindCpa}
		if len(args) == 1 {
			kind, err := query.ResolveKind(query.Params{"market": args[0]})
			if err != nil {
				return err
			}
			kinds = []model.Kind{kind}
		}

		tables := make(map[string][]string, len(kinds))
		for _, kind := range kinds {
			names, err := query.FilterNames(kind)
			if err != nil {
				return err
			}
			tables[string(kind)] = names
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, tables)
		}
		for i, kind := range kinds {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s:\n", kind)
			for n, name := range tables[string(kind)] {
				fmt.Fprintf(out, "  %2d. %s\n", n+1, name)
			}
		}
		return nil
	},
}
