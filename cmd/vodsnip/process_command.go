package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vodsnip/internal/clips"
	"vodsnip/internal/textutil"
	"vodsnip/internal/vodfetch"
)

func newProcessCommand(cctx *commandContext) *cobra.Command {
	var skipChat bool
	var keepTemp bool

	cmd := &cobra.Command{
		Use:   "process <vod-id>",
		Short: "Download a VOD, detect segments, and export clips",
		Long: "Runs the full pipeline for a VOD id: download the VOD (and " +
			"optionally its chat, rendered and composited side by side), detect " +
			"embedded-video segments, and export one clip per segment.",
		Args: cobra.ExactArgs(1),
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
			vodID := textutil.SanitizeFileName(args[0])
			out := cmd.OutOrStdout()

			fetcher := vodfetch.NewFetcher(cfg.Fetch, logger)
			videoPath := filepath.Join(cfg.Paths.WorkDir, vodID+".mp4")
			fmt.Fprintf(out, "Downloading VOD %s...\n", vodID)
			if err := fetcher.DownloadVOD(ctx, vodID, videoPath); err != nil {
				return err
			}

			detectInput := videoPath
			if !skipChat {
				chatJSON := filepath.Join(cfg.Paths.WorkDir, vodID+"_chat.json")
				chatVideo := filepath.Join(cfg.Paths.WorkDir, vodID+"_chat.mp4")
				combined := filepath.Join(cfg.Paths.WorkDir, vodID+"_combined.mp4")

				fmt.Fprintln(out, "Downloading and rendering chat...")
				if err := fetcher.DownloadChat(ctx, vodID, chatJSON); err != nil {
					return err
				}
				if err := fetcher.RenderChat(ctx, chatJSON, chatVideo); err != nil {
					return err
				}
				fmt.Fprintln(out, "Combining video and chat...")
				if err := fetcher.Combine(ctx, cfg.FFmpegBinary(), videoPath, chatVideo, combined); err != nil {
					return err
				}
				detectInput = combined
				if !keepTemp {
					defer removeFiles(chatJSON, chatVideo)
				}
			}

			result, err := runDetection(cmd, cctx, detectInput)
			if err != nil {
				return err
			}
			printSegments(cmd, result.RunID, result.Segments)

			if cfg.Clips.Enabled && len(result.Segments) > 0 {
				exporter := clips.NewExporter(cfg.FFmpegBinary(), cfg.Paths.ClipsDir, cfg.Clips.NamePrefix, logger)
				paths, err := exporter.Export(ctx, detectInput, result.Segments)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %d clips to %s\n", len(paths), cfg.Paths.ClipsDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipChat, "skip-chat", false, "Skip chat download and compositing")
	cmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "Keep intermediate chat files")
	return cmd
}
