package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/config"
	"github.com/alfredjeanlab/listings/internal/query"
)

var savedCmd = &cobra.Command{
	Use:     "saved",
	Short:   "Manage saved searches",
	GroupID: "search",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		searches, err := config.LoadSearches(cfg.SearchesFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, searches.Searches)
		}
		names := searches.Names()
		if len(names) == 0 {
			fmt.Fprintln(out, "no saved searches")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPARAMS\tDESCRIPTION")
		for _, name := range names {
			s, _ := searches.Get(name)
			fmt.Fprintf(tw, "%s\t%d\t%s\n", name, len(s.Params), s.Description)
		}
		return tw.Flush()
	},
}

var savedShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the parameters of a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searches, err := config.LoadSearches(cfg.SearchesFile)
		if err != nil {
			return err
		}
		s, ok := searches.Get(args[0])
		if !ok {
			return fmt.Errorf("saved search %q not found", args[0])
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, s)
		}
		if s.Description != "" {
			fmt.Fprintln(out, s.Description)
		}
		printParams(cmd, s.Params)
		return nil
	},
}

var savedSaveCmd = &cobra.Command{
	Use:         "save <name> key=value...",
	Annotations: map[string]string{paramsAnnotation: "true"},
	Short:       "Save a named search",
	Args:        cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		params, err := parseParams(args[1:])
		if err != nil {
			return err
		}
		// Reject searches that could never run.
		if _, err := query.ResolveKind(params); err != nil {
			return err
		}

		searches, err := config.LoadSearches(cfg.SearchesFile)
		if err != nil {
			return err
		}
		searches.Set(args[0], config.SavedSearch{Description: description, Params: params})
		if err := searches.Save(cfg.SearchesFile); err != nil {
			return err
		}
		logger.Debug("saved search", "name", args[0], "file", cfg.SearchesFile)
		fmt.Fprintf(cmd.OutOrStdout(), "saved search %q\n", args[0])
		return nil
	},
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searches, err := config.LoadSearches(cfg.SearchesFile)
		if err != nil {
			return err
		}
		if !searches.Delete(args[0]) {
			return fmt.Errorf("saved search %q not found", args[0])
		}
		if err := searches.Save(cfg.SearchesFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted saved search %q\n", args[0])
		return nil
	},
}

func printParams(cmd *cobra.Command, params query.Params) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s=%v\n", k, params[k])
	}
}

func init() {
	savedSaveCmd.Flags().String("description", "", "what the search is for")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedShowCmd)
	savedCmd.AddCommand(savedSaveCmd)
	savedCmd.AddCommand(savedDeleteCmd)
}
