package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/config"
	"github.com/alfredjeanlab/listings/internal/events"
	"github.com/alfredjeanlab/listings/internal/store/postgres"
)

var (
	jsonOutput bool

	cfg    *config.Config
	logger *slog.Logger

	listingStore *postgres.PostgresStore
	publisher    events.Publisher
)

var rootCmd = &cobra.Command{
	Use:           "listings <command>",
	Short:         "Search and manage practice listings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if listingStore != nil {
			if err := listingStore.Close(); err != nil {
				logger.Warn("close store", "err", err)
			}
			listingStore = nil
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logger.Warn("close event publisher", "err", err)
			}
			publisher = nil
		}
	},
}

// openStore connects to the configured database, running migrations on the
// way. The store is closed after the command finishes.
func openStore() (*postgres.PostgresStore, error) {
	if listingStore != nil {
		return listingStore, nil
	}
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	s, err := postgres.New(cfg.DatabaseURL, postgres.Options{
		Logger:          logger,
		DefaultDistance: cfg.DefaultDistance,
		SlowQuery:       cfg.SlowQuery,
	})
	if err != nil {
		return nil, err
	}
	listingStore = s
	return s, nil
}

// openPublisher connects to NATS when LISTINGS_NATS_URL is set. Without it
// events are discarded. A broker that cannot be reached is logged and
// treated the same way so writes never fail on notification.
func openPublisher() events.Publisher {
	if publisher != nil {
		return publisher
	}
	if cfg.NATSURL == "" {
		publisher = events.NoopPublisher{}
		return publisher
	}
	p, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		logger.Warn("events disabled", "err", err)
		publisher = events.NoopPublisher{}
		return publisher
	}
	publisher = p
	return publisher
}

// publish emits an event, logging rather than returning failures.
func publish(ctx context.Context, topic string, event any) {
	if err := openPublisher().Publish(ctx, topic, event); err != nil {
		logger.Warn("publish event", "topic", topic, "err", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "search", Title: "Search:"},
		&cobra.Group{ID: "listings", Title: "Listings:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Search
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(savedCmd)

	// Listings
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(exportCmd)

	// System
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
