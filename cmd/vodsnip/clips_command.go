package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vodsnip/internal/clips"
	"vodsnip/internal/segstore"
)

func newClipsCommand(cctx *commandContext) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "clips <vod-file>",
		Short: "Export clips for a stored detection run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			store, err := segstore.Open(cctx.segmentDBPath())
			if err != nil {
				return err
			}
			defer store.Close()

			if runID == "" || runID == "latest" {
				latest, err := store.LatestRun(ctx)
				if err != nil {
					return err
				}
				runID = latest.ID
			}
			segments, err := store.RunSegments(ctx, runID)
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s has no segments\n", runID)
				return nil
			}

			exporter := clips.NewExporter(cfg.FFmpegBinary(), cfg.Paths.ClipsDir, cfg.Clips.NamePrefix, logger)
			paths, err := exporter.Export(ctx, args[0], segments)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d clips to %s\n", len(paths), len(segments), cfg.Paths.ClipsDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "latest", "Run id to export clips for")
	return cmd
}
