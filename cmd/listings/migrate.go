package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Apply pending database migrations",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Opening the store runs every pending migration.
		if _, err := openStore(); err != nil {
			return err
		}
		logger.Info("migrations applied")
		fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
		return nil
	},
}
