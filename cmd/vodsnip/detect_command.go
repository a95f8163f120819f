package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"vodsnip/internal/config"
	"vodsnip/internal/detect"
	"vodsnip/internal/media/ffprobe"
	"vodsnip/internal/media/frames"
	"vodsnip/internal/ocr"
	"vodsnip/internal/ocrcache"
	"vodsnip/internal/segstore"
	"vodsnip/internal/services/vision"
	"vodsnip/internal/workspace"
)

func newDetectCommand(cctx *commandContext) *cobra.Command {
	var jsonOut bool
	var csvPath string

	cmd := &cobra.Command{
		Use:   "detect <vod-file>",
		Short: "Detect embedded-video segments in a VOD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runDetection(cmd, cctx, args[0])
			if err != nil {
				return err
			}
			if csvPath != "" {
				if err := writeSegmentsCSV(csvPath, result.Segments); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d segments to %s\n", len(result.Segments), csvPath)
			}
			if jsonOut {
				return writeJSON(cmd, result.Segments)
			}
			printSegments(cmd, result.RunID, result.Segments)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit segments as JSON")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write segments to a CSV file")
	return cmd
}

// runDetection executes the full detection pipeline for one VOD: inspect,
// extract crops, OCR through the cache, scan, merge, and persist the run.
func runDetection(cmd *cobra.Command, cctx *commandContext, vodArg string) (detect.Result, error) {
	var empty detect.Result
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return empty, err
	}
	logger, err := cctx.ensureLogger()
	if err != nil {
		return empty, err
	}
	ctx := cmd.Context()

	vodPath, err := config.ExpandPath(vodArg)
	if err != nil {
		return empty, err
	}
	if _, err := os.Stat(vodPath); err != nil {
		return empty, fmt.Errorf("vod file %s: %w", vodPath, err)
	}

	probe, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), vodPath)
	if err != nil {
		return empty, err
	}
	duration := probe.DurationSeconds()
	if duration <= 0 {
		return empty, fmt.Errorf("vod file %s has no usable duration", vodPath)
	}

	ws, err := workspace.Open(cfg.Paths.WorkDir, vodPath)
	if err != nil {
		return empty, err
	}
	defer ws.Close()

	extractor := frames.NewExtractor(cfg.FFmpegBinary(), logger)
	index, err := extractor.ExtractRegions(ctx, vodPath, ws.IdentityDir(), ws.TitleDir(), cfg.ROIs, cfg.Detection.IntervalSeconds)
	if err != nil {
		return empty, err
	}

	engine, err := ocr.NewTesseractEngine(cfg.OCR)
	if err != nil {
		return empty, err
	}
	defer engine.Close()

	cache, err := ocrcache.Open(ws.CacheFile(), engine, index, cfg.Detection.CacheFlushEvery, logger)
	if err != nil {
		return empty, err
	}

	var resolver detect.TitleResolver
	if cfg.Vision.Enabled && cfg.Vision.APIKey != "" {
		resolver = vision.NewClient(vision.Config{
			APIKey:         cfg.Vision.APIKey,
			BaseURL:        cfg.Vision.BaseURL,
			Model:          cfg.Vision.Model,
			Referer:        cfg.Vision.Referer,
			Title:          cfg.Vision.Title,
			TimeoutSeconds: cfg.Vision.TimeoutSeconds,
		})
	}

	detector := detect.New(detect.ParamsFromConfig(cfg.Detection), index, cache, resolver, logger)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar := progressbar.NewOptions(index.Count(),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		)
		detector.SetProgress(func(done, total int) {
			_ = bar.Set(done)
		})
	}

	result, err := detector.Run(ctx)
	if flushErr := cache.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		return empty, err
	}

	store, err := segstore.Open(cctx.segmentDBPath())
	if err != nil {
		return empty, err
	}
	defer store.Close()
	if err := store.SaveRun(ctx, result.RunID, vodPath, result.Segments); err != nil {
		return empty, err
	}
	return result, nil
}

func writeSegmentsCSV(path string, segments []detect.Segment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer file.Close()
	return segstore.WriteCSV(file, segments)
}

func printSegments(cmd *cobra.Command, runID string, segments []detect.Segment) {
	out := cmd.OutOrStdout()
	if len(segments) == 0 {
		fmt.Fprintf(out, "Run %s: no segments found\n", runID)
		return
	}
	rows := make([][]string, 0, len(segments))
	for _, segment := range segments {
		rows = append(rows, []string{
			segment.Identity,
			formatTimestamp(segment.StartSec),
			formatTimestamp(segment.EndSec),
			formatTimestamp(segment.DurationSeconds()),
			segment.Title,
		})
	}
	fmt.Fprintf(out, "Run %s: %d segments\n", runID, len(segments))
	fmt.Fprintln(out, renderTable(
		[]string{"Identity", "Start", "End", "Duration", "Title"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
