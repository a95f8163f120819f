package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vodsnip/internal/workspace"
)

func newCacheCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear a VOD's OCR cache and extracted frames",
	}
	cmd.AddCommand(newCacheStatusCommand(cctx))
	cmd.AddCommand(newCacheClearCommand(cctx))
	return cmd
}

func newCacheStatusCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <vod-file>",
		Short: "Show the workspace state for a VOD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			ws, err := workspace.Open(cfg.Paths.WorkDir, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace: %s\n", ws.Root())
			fmt.Fprintf(out, "Identity frames: %d\n", countDirEntries(ws.IdentityDir()))
			fmt.Fprintf(out, "Title frames: %d\n", countDirEntries(ws.TitleDir()))
			if info, err := os.Stat(ws.CacheFile()); err == nil {
				fmt.Fprintf(out, "OCR cache: %s (%d bytes)\n", ws.CacheFile(), info.Size())
			} else {
				fmt.Fprintln(out, "OCR cache: absent")
			}
			return nil
		},
	}
}

func newCacheClearCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <vod-file>",
		Short: "Delete extracted frames and the OCR cache for a VOD",
		Long: "Forces the next detection run to re-extract and re-read every " +
			"frame. Required after changing the crop regions, since cache " +
			"entries are keyed by sample index only.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			ws, err := workspace.Open(cfg.Paths.WorkDir, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			if err := ws.Clean(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared workspace %s\n", ws.Root())
			return nil
		},
	}
}

func countDirEntries(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return count
}
