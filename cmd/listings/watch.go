package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/events"
	"github.com/alfredjeanlab/listings/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [topic]",
	Short: "Stream listing events from NATS",
	Long: `Print listing events as they happen. The topic may use NATS wildcards
and defaults to listings.> (everything).`,
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.NATSURL == "" {
			return fmt.Errorf("LISTINGS_NATS_URL is required")
		}
		topic := "listings.>"
		if len(args) == 1 {
			topic = args[0]
		}

		sub, err := events.NewNATSSubscriber(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return err
		}
		defer cancel()
		logger.Debug("watching", "topic", topic)

		out := cmd.OutOrStdout()
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case env, ok := <-ch:
				if !ok {
					return nil
				}
				if err := printEvent(out, env); err != nil {
					return err
				}
			}
		}
	},
}

// printEvent writes one event per line.
func printEvent(w io.Writer, env events.Envelope) error {
	if jsonOutput {
		data, err := json.Marshal(env)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	ts := ui.RenderMuted(env.At.Local().Format("15:04:05"))
	_, err := fmt.Fprintf(w, "%s %s %s\n", ts, ui.RenderAccent(env.Topic), eventSummary(env))
	return err
}

func eventSummary(env events.Envelope) string {
	switch env.Topic {
	case events.TopicListingCreated:
		var ev events.ListingCreated
		if err := env.Decode(&ev); err == nil && ev.Listing != nil {
			return fmt.Sprintf("%s %s %q", ev.Listing.Kind, ev.Listing.ID, ev.Listing.Title)
		}
	case events.TopicPlaceSet:
		var ev events.PlaceSet
		if err := env.Decode(&ev); err == nil && ev.Place != nil {
			return fmt.Sprintf("%s (%g, %g)", ev.Place.Name, ev.Place.Latitude, ev.Place.Longitude)
		}
	case events.TopicExportCompleted:
		var ev events.ExportCompleted
		if err := env.Decode(&ev); err == nil {
			s := fmt.Sprintf("%d listings, %d bytes, %d destinations", ev.Listings, ev.Bytes, ev.Destinations)
			if ev.Failed > 0 {
				s += fmt.Sprintf(" (%d failed)", ev.Failed)
			}
			return s
		}
	}
	return string(env.Data)
}
