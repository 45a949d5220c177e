package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show details of a listing",
	GroupID: "listings",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		s, err := openStore()
		if err != nil {
			return err
		}
		l, err := s.GetListing(cmd.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("listing %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("getting listing %s: %w", id, err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), l)
		}
		printListingTable(cmd.OutOrStdout(), l)
		return nil
	},
}
