package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/query"
)

// explainer is implemented by relations that can render their SQL.
type explainer interface {
	SQL() (string, []any)
}

var searchCmd = &cobra.Command{
	Use:   "search [key=value ...]",
	Short: "Search listings",
	Long: `Search listings with key=value parameters, for example:

  listings search market=advisors location=Denver distance=50 percent_fee=5-10

The market (or type) parameter selects listing, advisor or cpa filters.
Values that are JSON literals are decoded, so favorited_ids=null and
favorited_ids=[] are different searches.`,
	GroupID:     "search",
	Annotations: map[string]string{paramsAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		savedName, _ := cmd.Flags().GetString("saved")
		userID, _ := cmd.Flags().GetString("user")
		admin, _ := cmd.Flags().GetBool("admin")
		countOnly, _ := cmd.Flags().GetBool("count")
		explain, _ := cmd.Flags().GetBool("explain")

		params, err := searchParams(savedName, args)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}

		rel, err := query.NewSearcher(s).Search(actingUser(userID, admin), params)
		if err != nil {
			return fmt.Errorf("search listings: %w", err)
		}

		out := cmd.OutOrStdout()
		switch {
		case explain:
			e, ok := rel.(explainer)
			if !ok {
				return fmt.Errorf("relation %T cannot be explained", rel)
			}
			stmt, stmtArgs := e.SQL()
			printExplain(out, stmt, stmtArgs)
			return nil

		case countOnly:
			n, err := rel.Count(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(out, map[string]int{"count": n})
			}
			fmt.Fprintln(out, n)
			return nil
		}

		listings, err := rel.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		logger.Debug("search complete", "params", len(params), "results", len(listings))
		if jsonOutput {
			return printJSON(out, listings)
		}
		printListingListTable(out, listings)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("saved", "", "start from a saved search")
	searchCmd.Flags().String("user", "", "search as this user id (default anonymous)")
	searchCmd.Flags().Bool("admin", false, "search as an administrator")
	searchCmd.Flags().Bool("count", false, "print the number of matches only")
	searchCmd.Flags().Bool("explain", false, "print the SQL instead of running it")
}
