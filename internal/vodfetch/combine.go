package vodfetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"vodsnip/internal/logging"
	"vodsnip/internal/services"
)

const combineFilter = "[0:v]scale=-2:720[v0];[1:v]scale=-2:720[v1];" +
	"[v0][v1]hstack=inputs=2,pad=ceil(iw/2)*2:ih[out]"

// encoderCandidates orders the video encoders Combine tries, hardware
// first.
var encoderCandidates = []struct {
	name    string
	hwaccel string
	codec   string
}{
	{name: "nvenc", hwaccel: "cuda", codec: "h264_nvenc"},
	{name: "videotoolbox", hwaccel: "videotoolbox", codec: "h264_videotoolbox"},
	{name: "cpu", codec: "libx264"},
}

// Combine composites the VOD and the rendered chat column side by side.
// Hardware encoders are tried first and the CPU encoder is the fallback, so
// the call succeeds on any host that can run ffmpeg at all.
func (f *Fetcher) Combine(ctx context.Context, ffmpegBinary, videoPath, chatPath, outputPath string) error {
	if strings.TrimSpace(videoPath) == "" || strings.TrimSpace(chatPath) == "" {
		return services.Wrap(services.ErrValidation, "vodfetch", "combine", "Video and chat paths required", nil)
	}

	var lastErr error
	for _, candidate := range encoderCandidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		args := []string{"-y", "-hide_banner", "-loglevel", "error"}
		if candidate.hwaccel != "" {
			args = append(args, "-hwaccel", candidate.hwaccel)
		}
		args = append(args,
			"-i", videoPath,
			"-i", chatPath,
			"-filter_complex", combineFilter,
			"-map", "[out]", "-map", "0:a?",
			"-c:v", candidate.codec, "-c:a", "aac",
			"-r", "30", "-shortest",
			outputPath,
		)
		cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("encoder %s: %w: %s", candidate.name, err, strings.TrimSpace(stderr.String()))
			f.logger.Debug("combine encoder failed, trying next",
				logging.String("encoder", candidate.name),
				logging.Error(lastErr))
			_ = os.Remove(outputPath)
			continue
		}
		f.logger.Info("combined video and chat",
			logging.String("encoder", candidate.name),
			logging.String("output", outputPath))
		return nil
	}
	return services.Wrap(services.ErrExternalTool, "vodfetch", "combine", "All encoders failed", lastErr)
}
