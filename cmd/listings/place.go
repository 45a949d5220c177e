package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/events"
	"github.com/alfredjeanlab/listings/internal/model"
)

var placeCmd = &cobra.Command{
	Use:     "place",
	Short:   "Manage the named places used by location searches",
	GroupID: "listings",
}

var placeSetCmd = &cobra.Command{
	Use:   "set <name> <latitude> <longitude>",
	Short: "Add or move a named place",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[1], 64)
		if err != nil || lat < -90 || lat > 90 {
			return fmt.Errorf("invalid latitude %q", args[1])
		}
		lon, err := strconv.ParseFloat(args[2], 64)
		if err != nil || lon < -180 || lon > 180 {
			return fmt.Errorf("invalid longitude %q", args[2])
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		p := &model.Place{Name: args[0], Latitude: lat, Longitude: lon}
		if err := s.SetPlace(cmd.Context(), p); err != nil {
			return fmt.Errorf("setting place %s: %w", p.Name, err)
		}
		publish(cmd.Context(), events.TopicPlaceSet, events.PlaceSet{Place: p})
		fmt.Fprintf(cmd.OutOrStdout(), "place %q set (%g, %g)\n", p.Name, lat, lon)
		return nil
	},
}

var placeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a named place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		p, err := s.GetPlace(cmd.Context(), args[0])
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("place %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("getting place %s: %w", args[0], err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %g, %g\n", p.Name, p.Latitude, p.Longitude)
		return nil
	},
}

func init() {
	placeCmd.AddCommand(placeSetCmd)
	placeCmd.AddCommand(placeShowCmd)
}
