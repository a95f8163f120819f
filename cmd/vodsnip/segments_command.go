package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vodsnip/internal/segstore"
)

func newSegmentsCommand(cctx *commandContext) *cobra.Command {
	var jsonOut bool
	var csvPath string

	cmd := &cobra.Command{
		Use:   "segments [run-id]",
		Short: "Show stored detection runs and their segments",
		Long: "Without arguments, lists all stored runs. With a run id (or " +
			"'latest'), shows that run's segments.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := segstore.Open(cctx.segmentDBPath())
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()

			if len(args) == 0 {
				return listRuns(cmd, store)
			}

			runID := args[0]
			if runID == "latest" {
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
			if csvPath != "" {
				if err := writeSegmentsCSV(csvPath, segments); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d segments to %s\n", len(segments), csvPath)
				return nil
			}
			if jsonOut {
				return writeJSON(cmd, segments)
			}
			printSegments(cmd, runID, segments)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit segments as JSON")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write segments to a CSV file instead of printing")
	cmd.AddCommand(newSegmentsDeleteCommand(cctx))
	return cmd
}

func newSegmentsDeleteCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run and its segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := segstore.Open(cctx.segmentDBPath())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}

func listRuns(cmd *cobra.Command, store *segstore.Store) error {
	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored runs")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", run.SegmentCount),
			run.VODPath,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Created", "Segments", "VOD"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}
