package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alfredjeanlab/listings/internal/events"
	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/store"
)

var createCmd = &cobra.Command{
	Use:     "create <title>",
	Short:   "Create a new listing",
	GroupID: "listings",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := listingFromFlags(args[0], cmd.Flags())
		if err != nil {
			return err
		}
		registerPlace, _ := cmd.Flags().GetBool("register-place")
		if registerPlace && (l.Location == "" || l.Latitude == nil) {
			return fmt.Errorf("--register-place needs --location, --lat and --lon")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		err = s.RunInTransaction(cmd.Context(), func(tx store.Store) error {
			if registerPlace {
				p := &model.Place{Name: l.Location, Latitude: *l.Latitude, Longitude: *l.Longitude}
				if err := tx.SetPlace(cmd.Context(), p); err != nil {
					return fmt.Errorf("setting place %s: %w", p.Name, err)
				}
			}
			return tx.CreateListing(cmd.Context(), l)
		})
		if err != nil {
			return fmt.Errorf("creating listing: %w", err)
		}
		logger.Debug("listing created", "id", l.ID, "kind", l.Kind)
		publish(cmd.Context(), events.TopicListingCreated, events.ListingCreated{Listing: l})
		if registerPlace {
			publish(cmd.Context(), events.TopicPlaceSet, events.PlaceSet{
				Place: &model.Place{Name: l.Location, Latitude: *l.Latitude, Longitude: *l.Longitude},
			})
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), l)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s %s\n", l.Kind, l.ID)
		return nil
	},
}

// listingFromFlags builds a listing from the create flags. Numeric columns
// are only set when their flag was given.
func listingFromFlags(title string, flags *pflag.FlagSet) (*model.Listing, error) {
	kind, _ := flags.GetString("kind")
	l := &model.Listing{Kind: model.Kind(kind), Title: title}
	l.Description, _ = flags.GetString("description")
	l.UserID, _ = flags.GetString("user")
	l.Location, _ = flags.GetString("location")
	l.Published, _ = flags.GetBool("published")
	wizard, _ := flags.GetString("wizard-status")
	l.WizardStatus = model.WizardStatus(wizard)
	l.Membership, _ = flags.GetString("membership")
	l.InterestOptions, _ = flags.GetStringSlice("interest")
	l.ClearingFirmOptions, _ = flags.GetStringSlice("clearing-firm")
	l.BrokerDealer, _ = flags.GetString("broker-dealer")
	l.AdvisorID, _ = flags.GetString("advisor-id")
	l.ServiceOptions, _ = flags.GetStringSlice("service")
	l.CredentialOptions, _ = flags.GetStringSlice("credential")
	l.CpaID, _ = flags.GetString("cpa-id")

	for name, dst := range map[string]**float64{
		"lat":         &l.Latitude,
		"lon":         &l.Longitude,
		"percent-fee": &l.PercentFee,
		"aum":         &l.AUM,
		"gdc":         &l.GDC,
		"revenue":     &l.Revenue,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = &v
	}

	if err := model.ValidateListing(withPlaceholders(l)); err != nil {
		return nil, err
	}
	return l, nil
}

// withPlaceholders returns a copy of l with the fields the store fills in
// set, so validation only reports what the user can fix.
func withPlaceholders(l *model.Listing) *model.Listing {
	c := *l
	if c.Published && c.PublishedAt == nil {
		t := c.CreatedAt
		c.PublishedAt = &t
	}
	return &c
}

func addCreateFlags(f *pflag.FlagSet) {
	f.String("kind", string(model.KindListing), "listing kind (listing, advisor, cpa)")
	f.StringP("description", "d", "", "listing description")
	f.String("user", "", "owning user id (required)")
	f.String("location", "", "place name")
	f.Float64("lat", 0, "latitude")
	f.Float64("lon", 0, "longitude")
	f.Bool("register-place", false, "also save --location at --lat/--lon as a named place")
	f.Bool("published", false, "publish immediately")
	f.String("wizard-status", "", "wizard status (started, completed)")
	f.String("membership", "", "membership tier")
	f.StringSlice("interest", nil, "interest options (repeatable)")
	f.Float64("percent-fee", 0, "percent fee")

	f.Float64("aum", 0, "assets under management (advisor)")
	f.Float64("gdc", 0, "gross dealer concession (advisor)")
	f.StringSlice("clearing-firm", nil, "clearing firm options (advisor, repeatable)")
	f.String("broker-dealer", "", "broker-dealer (advisor)")
	f.String("advisor-id", "", "advisor id (advisor)")

	f.Float64("revenue", 0, "annual revenue (cpa)")
	f.StringSlice("service", nil, "service options (cpa, repeatable)")
	f.StringSlice("credential", nil, "credential options (cpa, repeatable)")
	f.String("cpa-id", "", "cpa id (cpa)")
}

func init() {
	addCreateFlags(createCmd.Flags())
}
