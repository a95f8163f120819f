package vodfetch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"vodsnip/internal/config"
	"vodsnip/internal/logging"
	"vodsnip/internal/services"
)

// Fetcher downloads VODs and chat through twitch-dl and
// TwitchDownloaderCLI.
type Fetcher struct {
	cfg    config.Fetch
	logger *slog.Logger
}

// NewFetcher returns a Fetcher using the configured external binaries.
func NewFetcher(cfg config.Fetch, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{cfg: cfg, logger: logging.NewComponentLogger(logger, "vodfetch")}
}

// DownloadVOD downloads a VOD by ID to outputPath at the configured
// quality.
func (f *Fetcher) DownloadVOD(ctx context.Context, vodID, outputPath string) error {
	vodID = strings.TrimSpace(vodID)
	if vodID == "" {
		return services.Wrap(services.ErrValidation, "vodfetch", "download vod", "Empty VOD id", nil)
	}
	quality := f.cfg.Quality
	if quality == "" {
		quality = "1080p60"
	}
	f.logger.Info("downloading vod",
		logging.String("vod_id", vodID),
		logging.String("quality", quality),
		logging.String("output", outputPath))
	args := []string{"download", "-q", quality, vodID, "-o", outputPath, "--overwrite"}
	return f.run(ctx, f.cfg.TwitchDLBinary, args, "download vod")
}

// DownloadChat fetches the chat replay of a VOD as JSON with embedded
// emotes.
func (f *Fetcher) DownloadChat(ctx context.Context, vodID, outputPath string) error {
	vodID = strings.TrimSpace(vodID)
	if vodID == "" {
		return services.Wrap(services.ErrValidation, "vodfetch", "download chat", "Empty VOD id", nil)
	}
	f.logger.Info("downloading chat", logging.String("vod_id", vodID))
	args := []string{"chatdownload", "--id", vodID, "-o", outputPath, "-E"}
	return f.run(ctx, f.cfg.DownloaderBinary, args, "download chat")
}

// RenderChat renders a downloaded chat JSON into a video column suitable
// for side-by-side compositing.
func (f *Fetcher) RenderChat(ctx context.Context, chatJSONPath, outputPath string) error {
	args := []string{
		"chatrender",
		"-i", chatJSONPath,
		"-h", strconv.Itoa(f.cfg.ChatHeight),
		"-w", strconv.Itoa(f.cfg.ChatWidth),
		"--framerate", strconv.Itoa(f.cfg.ChatFramerate),
		"--font-size", strconv.Itoa(f.cfg.ChatFontSize),
		"-o", outputPath,
	}
	f.logger.Info("rendering chat", logging.String("output", outputPath))
	return f.run(ctx, f.cfg.DownloaderBinary, args, "render chat")
}

func (f *Fetcher) run(ctx context.Context, binary string, args []string, operation string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return services.Wrap(services.ErrConfiguration, "vodfetch", operation, "Tool binary not configured", nil)
	}
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		return services.Wrap(services.ErrExternalTool, "vodfetch", operation,
			fmt.Sprintf("%s failed: %s", binary, detail), err)
	}
	return nil
}
