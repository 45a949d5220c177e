package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/export"
	"github.com/alfredjeanlab/listings/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export [key=value ...]",
	Short: "Write search results as JSONL",
	Long: `Run a search as an administrator and write the results as JSONL.

Destinations come from --file and the LISTINGS_EXPORT_S3_* and
LISTINGS_EXPORT_GIT_* settings. With none configured the snapshot goes to
stdout. --every keeps exporting on LISTINGS_EXPORT_INTERVAL until interrupted.`,
	GroupID:     "listings",
	Annotations: map[string]string{paramsAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		savedName, _ := cmd.Flags().GetString("saved")
		file, _ := cmd.Flags().GetString("file")
		every, _ := cmd.Flags().GetBool("every")

		params, err := searchParams(savedName, args)
		if err != nil {
			return err
		}
		// Compose once up front so a bad market fails before connecting.
		if _, err := query.ResolveKind(params); err != nil {
			return err
		}

		dests, err := exportDestinations(cmd.Context(), file)
		if err != nil {
			return err
		}
		if len(dests) == 0 && every {
			return fmt.Errorf("--every needs a destination")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		e := &export.Exporter{Searcher: query.NewSearcher(s), Params: params}

		if len(dests) == 0 {
			_, err := e.WriteJSONL(cmd.Context(), cmd.OutOrStdout())
			return err
		}

		sched := export.NewScheduler(e, dests, cfg.Export.Interval, openPublisher(), logger)
		if !every {
			res, err := sched.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d listings (%d bytes) to %d destinations\n",
				res.Listings, res.Bytes, len(dests))
			return nil
		}

		logger.Info("exporting on a schedule", "interval", cfg.Export.Interval, "destinations", len(dests))
		sched.Start()
		<-cmd.Context().Done()
		sched.Stop()
		return nil
	},
}

// exportDestinations builds every configured destination.
func exportDestinations(ctx context.Context, file string) ([]export.Destination, error) {
	var dests []export.Destination
	if file != "" {
		dests = append(dests, export.FileDestination{Path: file})
	}
	ec := cfg.Export
	if ec.S3Bucket != "" {
		d, err := export.NewS3Destination(ctx, ec.S3Bucket, ec.S3Key, ec.S3Region, ec.S3Endpoint)
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	if ec.GitRepo != "" {
		dests = append(dests, export.NewGitDestination(ec.GitRepo, ec.GitFile, ec.GitBranch))
	}
	return dests, nil
}

func init() {
	exportCmd.Flags().String("saved", "", "start from a saved search")
	exportCmd.Flags().String("file", "", "also write the snapshot to this file")
	exportCmd.Flags().Bool("every", false, "keep exporting on LISTINGS_EXPORT_INTERVAL")
}
